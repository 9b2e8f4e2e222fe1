// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/models"
)

// memUserRepository is an in-memory store.UserRepository with the same
// uniqueness, versioning and allowlist rules as the PostgreSQL one.
type memUserRepository struct {
	mu       sync.Mutex
	users    map[string]models.User
	sessions map[string][]models.SessionToken

	// writes counts CreateUser and ApplyUserWrite calls.
	writes    int
	lastWrite store.UserWrite
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{
		users:    make(map[string]models.User),
		sessions: make(map[string][]models.SessionToken),
	}
}

func (r *memUserRepository) seed(users ...models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range users {
		if u.Version == 0 {
			u.Version = 1
		}
		r.users[u.UserID] = u
	}
}

func (r *memUserRepository) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *memUserRepository) conflicts(user models.User) error {
	for id, u := range r.users {
		if id == user.UserID {
			continue
		}
		if u.Email == user.Email {
			return store.ErrEmailAlreadyExists
		}
		if user.Username != nil && u.Username != nil && *u.Username == *user.Username {
			return store.ErrUsernameAlreadyExists
		}
	}
	return nil
}

func (r *memUserRepository) CreateUser(_ context.Context, user models.User, session *models.SessionToken) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflicts(user); err != nil {
		return models.User{}, err
	}

	r.writes++
	user.Version = 1
	user.UpdatedAt = user.RegisteredAt
	r.users[user.UserID] = user
	if session != nil {
		r.sessions[user.UserID] = []models.SessionToken{*session}
		user.SessionTokens = []models.SessionToken{*session}
	}
	return user, nil
}

func (r *memUserRepository) find(match func(models.User) bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (r *memUserRepository) FindUserByID(_ context.Context, userID string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.UserID == userID })
}

func (r *memUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	email = models.NormalizeEmail(email)
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *memUserRepository) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Username != nil && *u.Username == username })
}

func (r *memUserRepository) FindUserByResetToken(_ context.Context, digest string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.ResetPasswordToken != nil && *u.ResetPasswordToken == digest })
}

func (r *memUserRepository) ApplyUserWrite(_ context.Context, w store.UserWrite) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[w.UserID]
	if !ok {
		return 0, store.ErrNoUserWasFound
	}

	if w.Update != nil {
		if w.Update.Version != stored.Version {
			return 0, store.ErrVersionConflict
		}
		if err := r.conflicts(*w.Update); err != nil {
			return 0, err
		}
		updated := *w.Update
		updated.Version = stored.Version + 1
		updated.UpdatedAt = w.Now
		updated.Role = stored.Role
		updated.RegisteredAt = stored.RegisteredAt
		stored = updated
	}

	sessions := r.sessions[w.UserID]
	switch {
	case w.RemoveAllSessions:
		sessions = nil
	case w.RemoveSession != "":
		sessions = slices.DeleteFunc(sessions, func(s models.SessionToken) bool { return s.Token == w.RemoveSession })
	}

	if w.AddSession != nil {
		sessions = slices.DeleteFunc(sessions, func(s models.SessionToken) bool { return s.Expired(w.Now) })
		if !slices.ContainsFunc(sessions, func(s models.SessionToken) bool { return s.Token == w.AddSession.Token }) {
			sessions = append(sessions, *w.AddSession)
		}
		if w.MaxSessions > 0 && len(sessions) > w.MaxSessions {
			sessions = sessions[len(sessions)-w.MaxSessions:]
		}
	}

	r.writes++
	r.lastWrite = w
	r.users[w.UserID] = stored
	r.sessions[w.UserID] = sessions
	return stored.Version, nil
}

func (r *memUserRepository) HasSessionToken(_ context.Context, userID, token string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions[userID] {
		if s.Token == token && !s.Expired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepository) sessionCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[userID])
}

// recordingMailer keeps every reset link it was asked to send.
type recordingMailer struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(map[string]string)}
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, email, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[email] = resetURL
	return m.err
}

// plainHasher is a fast reversible PasswordHasher for tests that do not
// exercise bcrypt itself.
type plainHasher struct{}

func (plainHasher) Hash(_ context.Context, plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (plainHasher) Verify(_ context.Context, plaintext, hash string) bool {
	return hash != "" && hash == "hashed:"+plaintext
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seqIDs hands out predictable ids.
type seqIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}
