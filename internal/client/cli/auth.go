package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dkozyrev/jobtrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is wiped before returning. Any I/O or service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.log.Error(ctx, "registration failed", "err", err)
		return err
	}

	printlnFn("Success! You can now login.")
	return nil
}

// Login prompts the user for credentials and authenticates against the
// cloud endpoint. On success the issued token pair is persisted locally
// and the app switches to online mode. When the server is unreachable
// the app stays usable: all local commands keep working offline.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			a.log.Warn(ctx, "server unavailable, staying offline")
		} else {
			a.log.Error(ctx, "login failed", "err", err)
		}
		return err
	}

	a.loggedIn = true
	a.setMode(ModeOnline)
	printlnFn("Logged in.")
	return nil
}

// Logout drops the stored session and disables cloud commands. Local data
// is untouched.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		return err
	}
	a.loggedIn = false
	a.setMode(ModeDisabled)
	printlnFn("Logged out.")
	return nil
}
