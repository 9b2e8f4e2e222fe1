// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert or update collides
	// with the unique index on the lower-cased e-mail.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when an insert or update collides
	// with the unique index on username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the users row was modified since it was read.
	ErrVersionConflict = errors.New("user version conflict occurred")

	// ErrPostNotFound is returned when no post matches the id or slug.
	ErrPostNotFound = errors.New("post was not found")

	// ErrSlugAlreadyExists is returned when a post slug is already taken.
	ErrSlugAlreadyExists = errors.New("slug already exists")

	// ErrCommentNotFound is returned when no comment matches the id.
	ErrCommentNotFound = errors.New("comment was not found")

	// ErrSubscriptionAlreadyExists is returned for a duplicate subscriber e-mail.
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists")

	// ErrSubscriptionNotFound is returned when no subscription matches the id.
	ErrSubscriptionNotFound = errors.New("subscription was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// Constraint names used to tell unique violations apart.
const (
	constraintUsersEmail         = "users_email_key"
	constraintUsersUsername      = "users_username_key"
	constraintPostsSlug          = "posts_slug_key"
	constraintSubscriptionsEmail = "subscriptions_email_key"
)
