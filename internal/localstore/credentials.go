package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/cryptox"
	"github.com/moviehub-app/moviehub/internal/models"
)

const (
	userKeyPrefix     = "auth:user:"
	currentSessionKey = "auth:session"

	minPasswordLength = 8
)

// storedUser is a registry record: the public user plus its password hash.
type storedUser struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"passwordHash"`
}

// storedSession is the active on-device session.
type storedSession struct {
	Session models.Session `json:"session"`
	User    models.User    `json:"user"`
}

// CredentialStore is the local identity backend: a user registry keyed by
// email plus at most one active session. Accounts created here exist only
// on this device; email addresses are matched case-sensitively, as stored.
type CredentialStore struct {
	store *Store
}

// NewCredentialStore returns a CredentialStore over the shared local store.
func NewCredentialStore(store *Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// Signup registers a new local account and signs it in. Local accounts skip
// email verification since there is no mail channel on-device.
func (c *CredentialStore) Signup(ctx context.Context, email string, password string, name string) (*models.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", common.ErrValidation, minPasswordLength)
	}

	var existing storedUser
	err := c.store.getJSON(userKeyPrefix+email, &existing)
	if err == nil {
		return nil, common.ErrAccountExists
	}
	if !errors.Is(err, errKeyNotFound) {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:            "local_" + id,
		Email:         email,
		Name:          name,
		CreatedAt:     time.Now().UTC(),
		EmailVerified: true,
	}

	if err := c.store.setJSON(userKeyPrefix+email, storedUser{User: user, PasswordHash: hash}); err != nil {
		return nil, err
	}
	if err := c.setSession(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials against the registry and activates a session.
func (c *CredentialStore) Login(ctx context.Context, email string, password string) (*models.User, error) {
	var rec storedUser
	if err := c.store.getJSON(userKeyPrefix+email, &rec); err != nil {
		if errors.Is(err, errKeyNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, err
	}
	if !cryptox.CheckPassword(rec.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	if err := c.setSession(rec.User); err != nil {
		return nil, err
	}
	user := rec.User
	return &user, nil
}

// CurrentUser returns the user of the active session, or ErrNoSession.
func (c *CredentialStore) CurrentUser(ctx context.Context) (*models.User, error) {
	var sess storedSession
	if err := c.store.getJSON(currentSessionKey, &sess); err != nil {
		if errors.Is(err, errKeyNotFound) {
			return nil, common.ErrNoSession
		}
		return nil, err
	}
	user := sess.User
	return &user, nil
}

// HasSession reports whether an active local session exists.
func (c *CredentialStore) HasSession(ctx context.Context) bool {
	_, err := c.CurrentUser(ctx)
	return err == nil
}

// ClearSession removes the active session. Clearing when no session exists
// is not an error.
func (c *CredentialStore) ClearSession(ctx context.Context) error {
	return c.store.delete(currentSessionKey)
}

func (c *CredentialStore) setSession(user models.User) error {
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return err
	}
	sess := storedSession{
		Session: models.Session{ID: "local_" + id, UserID: user.ID},
		User:    user,
	}
	return c.store.setJSON(currentSessionKey, sess)
}
