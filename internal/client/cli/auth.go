package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and a confirmed password and creates the
// account. It does not sign the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if _, err := a.accounts.Register(ctx, name, email, string(password), string(confirm)); err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login prompts for credentials and signs in. Switching to the signed-in
// command set happens when the session event is applied.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.sessions.Login(ctx, email, string(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Invalid email or password.")
	default:
		a.report(ctx, err)
	}
	return err
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	return nil
}

// ResetDevice signs out and wipes every value kept in the secure store.
func (a *App) ResetDevice(ctx context.Context) error {
	if err := a.sessions.ResetDevice(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Local data cleared.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.accounts.Profile(ctx, a.userID())
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.Name, u.Email)
	return nil
}

// EditProfile asks for a new name and password. Leaving a field empty keeps
// its current value.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "New password (empty to keep)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) > 0 {
		confirm, err := getPassword(a.out, "Confirm new password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)
		if string(confirm) != string(password) {
			a.report(ctx, common.ErrPasswordMismatch)
			return common.ErrPasswordMismatch
		}
	}

	u, err := a.accounts.UpdateProfile(ctx, a.userID(), name, string(password))
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s\n", u.Name)
	return nil
}
