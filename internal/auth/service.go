// Package auth implements the identity facade: the single authentication
// entry point for the UI. It arbitrates between the remote identity
// service and the local credential store, falling back to local storage
// on infrastructure failures while never letting a backend switch mask a
// user-caused error.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/models"
)

// AccountClient is the remote identity backend. *appwrite.Client
// satisfies it.
//
// Contract:
//   - CreateEmailSession attaches the session to the client on success.
//   - All errors wrap a sentinel from internal/common.
type AccountClient interface {
	CreateAccount(ctx context.Context, email string, password string, name string) (*models.User, error)
	CreateEmailSession(ctx context.Context, email string, password string) (*models.Session, error)
	CurrentAccount(ctx context.Context) (*models.User, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CreateRecovery(ctx context.Context, email string, redirectURL string) error
	UpdateRecovery(ctx context.Context, userID string, secret string, newPassword string) error
	UpdatePassword(ctx context.Context, oldPassword string, newPassword string) error
	CreateVerification(ctx context.Context, redirectURL string) error
	UpdateVerification(ctx context.Context, userID string, secret string) error
}

// CredentialStore is the local identity backend.
// *localstore.CredentialStore satisfies it.
type CredentialStore interface {
	Signup(ctx context.Context, email string, password string, name string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	HasSession(ctx context.Context) bool
	ClearSession(ctx context.Context) error
}

// Result reports the outcome of operations that carry a user-facing
// message in addition to success.
type Result struct {
	Success bool
	Message string
}

// Service is the identity facade. Construct one per client; the backend
// mode is instance state, not package state, so independent instances
// (including those under test) never interfere.
//
// Callers are expected to serialize operations; the facade itself does
// no locking.
type Service struct {
	remote AccountClient
	local  CredentialStore
	log    logging.Logger

	recoveryURL string

	useRemote bool
	user      *models.User
}

// NewService builds a facade over the given backends. If a local session
// already exists the facade starts in local mode; a previous run switched
// over and never migrated back. recoveryURL is where password-recovery
// emails send the user.
func NewService(ctx context.Context, remote AccountClient, local CredentialStore, recoveryURL string, log logging.Logger) *Service {
	return &Service{
		remote:      remote,
		local:       local,
		log:         log.With("component", "auth"),
		recoveryURL: recoveryURL,
		useRemote:   !local.HasSession(ctx),
	}
}

// CurrentUser returns the in-memory user resolved by the last successful
// auth operation, or nil when logged out.
func (s *Service) CurrentUser() *models.User { return s.user }

// UsingRemote reports which backend the facade currently targets.
func (s *Service) UsingRemote() bool { return s.useRemote }

func (s *Service) switchToLocal(ctx context.Context, reason error) {
	if s.useRemote {
		s.useRemote = false
		s.log.Warn(ctx, "identity service unavailable, switching to local accounts", "error", reason)
	}
}

// isAuthError reports whether err is user-caused and must surface
// verbatim rather than trigger a backend switch.
func isAuthError(err error) bool {
	return errors.Is(err, common.ErrInvalidCredentials) ||
		errors.Is(err, common.ErrAccountNotFound) ||
		errors.Is(err, common.ErrAccountExists) ||
		errors.Is(err, common.ErrValidation)
}

// CheckSession resolves the currently authenticated user, or nil when no
// session is active. A remote "no session" answer is a legitimate
// logged-out state and keeps the facade in remote mode; any other remote
// failure switches to local storage.
func (s *Service) CheckSession(ctx context.Context) (*models.User, error) {
	if s.useRemote {
		user, err := s.remote.CurrentAccount(ctx)
		if err == nil {
			s.user = user
			return user, nil
		}
		if errors.Is(err, common.ErrNoSession) {
			s.user = nil
			return nil, nil
		}
		s.switchToLocal(ctx, err)
	}

	user, err := s.local.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			s.user = nil
			return nil, nil
		}
		return nil, fmt.Errorf("checking local session: %w", err)
	}
	s.user = user
	return user, nil
}

// Login authenticates with email and password. Authentication-specific
// remote failures (wrong password, unknown account) are returned verbatim
// and never fall back to local storage: a local-only account must not
// masquerade as a remote login. Infrastructure failures switch to local
// mode and retry there within the same call.
func (s *Service) Login(ctx context.Context, email string, password string) (*models.User, error) {
	if s.useRemote {
		// A dangling previous session would make session creation fail.
		_ = s.remote.DeleteSession(ctx, "current")

		_, err := s.remote.CreateEmailSession(ctx, email, password)
		if err == nil {
			user, err := s.remote.CurrentAccount(ctx)
			if err != nil {
				return nil, fmt.Errorf("resolving user after login: %w", err)
			}
			s.user = user
			return user, nil
		}
		if isAuthError(err) {
			return nil, err
		}
		s.switchToLocal(ctx, err)
	}

	user, err := s.local.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}

// Signup creates an account. In remote mode an already-registered email is
// recovered by logging in instead ("welcome back"); validation errors
// surface verbatim; infrastructure failures fall back to a local account.
// When the remote account is created but a session cannot be established,
// the user still ends up signed in locally and the message says the
// account was created remotely.
func (s *Service) Signup(ctx context.Context, email string, password string, name string) (*Result, error) {
	if s.useRemote {
		return s.remoteSignup(ctx, email, password, name)
	}
	return s.localSignup(ctx, email, password, name, "Account created on this device.")
}

func (s *Service) remoteSignup(ctx context.Context, email string, password string, name string) (*Result, error) {
	_, err := s.remote.CreateAccount(ctx, email, password, name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAccountExists):
			user, loginErr := s.Login(ctx, email, password)
			if loginErr != nil {
				return nil, err
			}
			s.user = user
			return &Result{Success: true, Message: "Welcome back! You already had an account, so we signed you in."}, nil
		case errors.Is(err, common.ErrValidation):
			return nil, err
		default:
			s.switchToLocal(ctx, err)
			return s.localSignup(ctx, email, password, name, "Account created on this device.")
		}
	}

	if _, err := s.remote.CreateEmailSession(ctx, email, password); err != nil {
		// Account exists remotely but cannot be used yet (verification
		// required, misconfigured session scope). Sign the user in locally
		// rather than leaving them stuck unauthenticated.
		s.switchToLocal(ctx, err)
		return s.localSignup(ctx, email, password, name,
			"Account created. The sign-in service is unavailable, so you are signed in on this device for now.")
	}

	user, err := s.remote.CurrentAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving user after signup: %w", err)
	}
	s.user = user
	return &Result{Success: true, Message: "Account created successfully."}, nil
}

func (s *Service) localSignup(ctx context.Context, email string, password string, name string, message string) (*Result, error) {
	user, err := s.local.Signup(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.user = user
	return &Result{Success: true, Message: message}, nil
}

// Logout ends the session. Remote deletion is best-effort; local state is
// cleared unconditionally, so from the caller's perspective logout never
// fails.
func (s *Service) Logout(ctx context.Context) {
	if s.useRemote {
		if err := s.remote.DeleteSession(ctx, "current"); err != nil {
			s.log.Warn(ctx, "remote logout failed, clearing local state anyway", "error", err)
		}
	}
	if err := s.local.ClearSession(ctx); err != nil {
		s.log.Warn(ctx, "clearing local session failed", "error", err)
	}
	s.user = nil
}

// RequestPasswordReset asks the identity service to email a recovery link.
// There is no local equivalent: without a mail channel, possession of the
// address cannot be proven.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*Result, error) {
	if !s.useRemote {
		return nil, fmt.Errorf("%w: password reset requires the online service", common.ErrUnsupportedInMode)
	}
	if err := s.remote.CreateRecovery(ctx, email, s.recoveryURL); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Password reset email sent. Check your inbox."}, nil
}

// ResetPassword consumes a recovery secret from the reset email and sets a
// new password. Remote-only, like RequestPasswordReset.
func (s *Service) ResetPassword(ctx context.Context, userID string, secret string, newPassword string, confirm string) (*Result, error) {
	if newPassword != confirm {
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if !s.useRemote {
		return nil, fmt.Errorf("%w: password reset requires the online service", common.ErrUnsupportedInMode)
	}
	if err := s.remote.UpdateRecovery(ctx, userID, secret, newPassword); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Password updated. You can sign in with your new password."}, nil
}

// RequestEmailVerification asks the identity service to email a
// verification link to the signed-in user. Remote-only; local accounts
// are created verified.
func (s *Service) RequestEmailVerification(ctx context.Context) (*Result, error) {
	if !s.useRemote {
		return nil, fmt.Errorf("%w: email verification requires the online service", common.ErrUnsupportedInMode)
	}
	if err := s.remote.CreateVerification(ctx, s.recoveryURL); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Verification email sent. Check your inbox."}, nil
}

// ConfirmEmailVerification consumes the secret from the verification
// email and marks the account verified.
func (s *Service) ConfirmEmailVerification(ctx context.Context, userID string, secret string) (*Result, error) {
	if !s.useRemote {
		return nil, fmt.Errorf("%w: email verification requires the online service", common.ErrUnsupportedInMode)
	}
	if err := s.remote.UpdateVerification(ctx, userID, secret); err != nil {
		return nil, err
	}
	if s.user != nil {
		s.user.EmailVerified = true
	}
	return &Result{Success: true, Message: "Email verified."}, nil
}

// ChangePassword updates the password of the signed-in user. Remote-only;
// local accounts have no change-password flow. Remote errors propagate
// unchanged.
func (s *Service) ChangePassword(ctx context.Context, oldPassword string, newPassword string) (*Result, error) {
	if !s.useRemote {
		return nil, fmt.Errorf("%w: changing the password requires the online service", common.ErrUnsupportedInMode)
	}
	if err := s.remote.UpdatePassword(ctx, oldPassword, newPassword); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Password changed successfully."}, nil
}
