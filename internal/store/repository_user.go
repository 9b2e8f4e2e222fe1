// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// The users row and its user_sessions allowlist are always written inside
// one transaction.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.Username, &u.PasswordHash, &u.ProviderAccessToken,
		&u.Name, &u.FirstName, &u.LastName, &u.Country, &u.AgreedToTerms, &u.Bio, &u.ProfilePictureURL,
		&u.Gender, &u.HomepageURL, &u.Company, &u.City, &u.Interests, &u.Role,
		&u.ResetPasswordToken, &u.ResetPasswordExpires, &u.Version, &u.RegisteredAt, &u.UpdatedAt,
	)
	return u, err
}

// CreateUser persists a new user record and, when session is non-nil, the
// first allowlist entry. Both rows are written in one transaction.
//
// Error handling:
//   - unique_violation on users_email_key → [ErrEmailAlreadyExists].
//   - unique_violation on users_username_key → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User, session *models.SessionToken) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if user.Interests == nil {
		user.Interests = models.StringList{}
	}

	row := tx.QueryRowContext(ctx, createUser,
		user.UserID, user.Email, user.Username, user.PasswordHash, user.ProviderAccessToken,
		user.Name, user.FirstName, user.LastName, user.Country, user.AgreedToTerms, user.Bio, user.ProfilePictureURL,
		genderValue(user.Gender), user.HomepageURL, user.Company, user.City, user.Interests, string(user.Role),
		user.RegisteredAt,
	)
	if err = row.Scan(&user.Version, &user.RegisteredAt, &user.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, mapUserWriteError(err)
	}

	if session != nil {
		if _, err = tx.ExecContext(ctx, insertSession, user.UserID, session.Token, session.ExpiresAt, session.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting first session")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		user.SessionTokens = []models.SessionToken{*session}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to commit transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, "FindUserByID", findUserByID, userID)
}

// FindUserByEmail retrieves the user by case-insensitive e-mail match.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "FindUserByEmail", findUserByEmail, models.NormalizeEmail(email))
}

// FindUserByUsername retrieves the user holding username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "FindUserByUsername", findUserByUsername, username)
}

// FindUserByResetToken retrieves the user whose stored reset token digest
// equals tokenDigest. Expiry is checked by the caller.
func (r *userRepository) FindUserByResetToken(ctx context.Context, tokenDigest string) (models.User, error) {
	return r.findUser(ctx, "FindUserByResetToken", findUserByResetToken, tokenDigest)
}

func (r *userRepository) findUser(ctx context.Context, caller, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.withRetry(ctx, func() error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRowContext(ctx, query, arg))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository."+caller).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ApplyUserWrite implements [UserRepository]. Statement order inside the
// transaction: versioned row update, revocations, prune of expired
// sessions, insert of the new session, trim to MaxSessions.
func (r *userRepository) ApplyUserWrite(ctx context.Context, w UserWrite) (int64, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*userRepository.ApplyUserWrite").
		Str("user_id", w.UserID).
		Logger()

	if w.Now.IsZero() {
		w.Now = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var version int64
	if w.Update != nil {
		version, err = r.updateUser(ctx, tx, *w.Update, w.Now)
		if err != nil {
			log.Warn().Err(err).Int64("provided_version", w.Update.Version).Msg("user row was not updated")
			return 0, err
		}
	}

	if w.RemoveAllSessions {
		if _, err = tx.ExecContext(ctx, deleteAllSessions, w.UserID); err != nil {
			log.Err(err).Msg("failed to revoke all sessions")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	} else if w.RemoveSession != "" {
		if _, err = tx.ExecContext(ctx, deleteSession, w.UserID, w.RemoveSession); err != nil {
			log.Err(err).Msg("failed to revoke session")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if w.AddSession != nil {
		if _, err = tx.ExecContext(ctx, pruneExpiredSessions, w.UserID, w.Now); err != nil {
			log.Err(err).Msg("failed to prune expired sessions")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		s := w.AddSession
		if _, err = tx.ExecContext(ctx, insertSession, w.UserID, s.Token, s.ExpiresAt, s.CreatedAt); err != nil {
			log.Err(err).Msg("failed to insert session")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if w.MaxSessions > 0 {
			if _, err = tx.ExecContext(ctx, trimSessions, w.UserID, w.MaxSessions, s.Token); err != nil {
				log.Err(err).Msg("failed to trim sessions")
				return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if w.Update == nil {
		if err = tx.QueryRowContext(ctx, selectUserVersion, w.UserID).Scan(&version); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, ErrNoUserWasFound
			}
			log.Err(err).Msg("failed to read user version")
			return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().Int64("version", version).Msg("user write applied")
	return version, nil
}

// updateUser runs the versioned UPDATE. No returned row means either the
// user is gone or another writer bumped the version first.
func (r *userRepository) updateUser(ctx context.Context, tx *sql.Tx, user models.User, now time.Time) (int64, error) {
	query, args, err := buildUpdateUserQuery(user, now)
	if err != nil {
		return 0, err
	}

	var version int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, mapUserWriteError(err)
	}

	var current int64
	if err = tx.QueryRowContext(ctx, selectUserVersion, user.UserID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoUserWasFound
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return 0, fmt.Errorf("stored version %d, provided %d: %w", current, user.Version, ErrVersionConflict)
}

// HasSessionToken implements [UserRepository].
func (r *userRepository) HasSessionToken(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	var found bool
	err := r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, hasSession, userID, token, now).Scan(&found)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.HasSessionToken").
			Str("user_id", userID).
			Msg("error checking session allowlist")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

func mapUserWriteError(err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case constraintUsersUsername:
			return ErrUsernameAlreadyExists
		default:
			return ErrEmailAlreadyExists
		}
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}
