package appwrite

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/moviehub-app/moviehub/internal/models"
)

// accountDoc is the wire shape of a user account.
type accountDoc struct {
	ID                string `json:"$id"`
	CreatedAt         string `json:"$createdAt"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	EmailVerification bool   `json:"emailVerification"`
	Status            bool   `json:"status"`
}

// sessionDoc is the wire shape of a session.
type sessionDoc struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

func (d accountDoc) toUser() *models.User {
	created, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return &models.User{
		ID:            d.ID,
		Email:         d.Email,
		Name:          d.Name,
		CreatedAt:     created,
		EmailVerified: d.EmailVerification,
	}
}

// CreateAccount registers a new user with a generated unique id.
func (c *Client) CreateAccount(ctx context.Context, email string, password string, name string) (*models.User, error) {
	body := map[string]string{
		"userId":   uuid.NewString(),
		"email":    email,
		"password": password,
		"name":     name,
	}
	var doc accountDoc
	if err := c.do(ctx, http.MethodPost, "/account", nil, body, &doc); err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// CreateEmailSession authenticates with email and password. On success the
// returned session secret is attached to the client for subsequent calls.
func (c *Client) CreateEmailSession(ctx context.Context, email string, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var doc sessionDoc
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, &doc); err != nil {
		return nil, err
	}
	c.SetSession(doc.Secret)
	return &models.Session{ID: doc.ID, UserID: doc.UserID}, nil
}

// CurrentAccount returns the user bound to the attached session.
func (c *Client) CurrentAccount(ctx context.Context) (*models.User, error) {
	var doc accountDoc
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, &doc); err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// DeleteSession destroys a session by id; "current" targets the attached
// session. The local session secret is cleared regardless of outcome.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	err := c.do(ctx, http.MethodDelete, "/account/sessions/"+sessionID, nil, nil, nil)
	c.ClearSession()
	return err
}

// CreateRecovery asks the service to email a password-recovery link that
// redirects to the given URL.
func (c *Client) CreateRecovery(ctx context.Context, email string, redirectURL string) error {
	body := map[string]string{"email": email, "url": redirectURL}
	return c.do(ctx, http.MethodPost, "/account/recovery", nil, body, nil)
}

// UpdateRecovery consumes a recovery secret and sets a new password.
func (c *Client) UpdateRecovery(ctx context.Context, userID string, secret string, newPassword string) error {
	body := map[string]string{"userId": userID, "secret": secret, "password": newPassword}
	return c.do(ctx, http.MethodPut, "/account/recovery", nil, body, nil)
}

// UpdatePassword changes the password of the session's user.
func (c *Client) UpdatePassword(ctx context.Context, oldPassword string, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "password": newPassword}
	return c.do(ctx, http.MethodPatch, "/account/password", nil, body, nil)
}

// CreateVerification asks the service to email a verification link.
func (c *Client) CreateVerification(ctx context.Context, redirectURL string) error {
	body := map[string]string{"url": redirectURL}
	return c.do(ctx, http.MethodPost, "/account/verification", nil, body, nil)
}

// UpdateVerification consumes a verification secret, marking the user's
// email address as confirmed.
func (c *Client) UpdateVerification(ctx context.Context, userID string, secret string) error {
	body := map[string]string{"userId": userID, "secret": secret}
	return c.do(ctx, http.MethodPut, "/account/verification", nil, body, nil)
}
