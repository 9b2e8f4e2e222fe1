// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted adaptive hashes and
// checks candidates against them. The salt is embedded in the hash string.
type PasswordHasher interface {
	// Hash returns the encoded hash of plaintext. It blocks until a hashing
	// slot is free or ctx is done.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. It fails closed: an
	// empty or malformed hash, a cancelled ctx or any internal error yields
	// false.
	Verify(ctx context.Context, plaintext, hash string) bool
}
