package cli

import (
	"context"
	"fmt"

	"github.com/moviehub-app/moviehub/internal/auth"
)

// Register creates an account, signs the user in, and loads favorites.
func (a *App) Register(ctx context.Context) error {
	name, err := a.promptLine("Name: ")
	if err != nil {
		return err
	}
	email, err := a.promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}

	res, err := a.auth.Signup(ctx, email, password, name)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return a.reloadFavorites(ctx)
}

// Login authenticates and loads the user's favorites.
func (a *App) Login(ctx context.Context) error {
	email, err := a.promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", user.Email)
	return a.reloadFavorites(ctx)
}

// Logout ends the session and clears the in-memory favorites.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Println("Signed out")
	return a.reloadFavorites(ctx)
}

// Whoami prints the signed-in user.
func (a *App) Whoami(ctx context.Context) error {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

// ChangePassword updates the signed-in user's password.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := a.promptPassword("Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := a.promptPassword("New password: ")
	if err != nil {
		return err
	}

	res, err := a.auth.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

// RequestReset manages password recovery. Without arguments it asks for
// a recovery email; with "<userID> <secret>" from the emailed link it
// prompts for a new password and completes the reset.
func (a *App) RequestReset(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		email, err := a.promptLine("Email: ")
		if err != nil {
			return err
		}
		res, err := a.auth.RequestPasswordReset(ctx, email)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	case 2:
		newPassword, err := a.promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := a.promptPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		res, err := a.auth.ResetPassword(ctx, args[0], args[1], newPassword, confirm)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	default:
		return fmt.Errorf("usage: reset [<user-id> <secret>]")
	}
}

// Verify manages email verification. Without arguments it requests a
// verification email; with "<userID> <secret>" from the emailed link it
// confirms the address.
func (a *App) Verify(ctx context.Context, args []string) error {
	var res *auth.Result
	var err error
	switch len(args) {
	case 0:
		res, err = a.auth.RequestEmailVerification(ctx)
	case 2:
		res, err = a.auth.ConfirmEmailVerification(ctx, args[0], args[1])
	default:
		return fmt.Errorf("usage: verify [<user-id> <secret>]")
	}
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

// reloadFavorites refreshes the favorites state for the current user, or
// clears it after logout.
func (a *App) reloadFavorites(ctx context.Context) error {
	userID := ""
	if user := a.auth.CurrentUser(); user != nil {
		userID = user.ID
	}
	_, err := a.favorites.LoadFavorites(ctx, userID)
	return err
}
