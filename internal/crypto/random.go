// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// ResetTokenBytes is the entropy of a password reset token.
const ResetTokenBytes = 20

// StateBytes is the entropy of an OAuth state value.
const StateBytes = 16

// RandomHex reads n bytes from the OS CSPRNG and returns them hex-encoded.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateResetToken returns a fresh password reset token (40 hex chars).
func GenerateResetToken() (string, error) {
	return RandomHex(ResetTokenBytes)
}

// GenerateState returns a fresh OAuth state value.
func GenerateState() (string, error) {
	return RandomHex(StateBytes)
}
