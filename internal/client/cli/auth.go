package cli

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

// Interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// Signup prompts for username, email and the password twice, validates the
// form and creates the account. A successful signup also logs in.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in as", a.currentUsername())
		return nil
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	again, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	username, email, err = models.ValidateSignupForm(username, email, string(password), string(again))
	if err != nil {
		return err
	}

	a.auth.ClearError()
	if err := a.auth.Signup(ctx, username, email, string(password)); err != nil {
		return err
	}

	a.println("Welcome, " + username + "!")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in as", a.currentUsername())
		return nil
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.auth.ClearError()
	if err := a.auth.Login(ctx, username, string(password)); err != nil {
		return err
	}

	a.println("Logged in as", a.currentUsername())
	return nil
}

// Logout ends the session. The user directory and posts are kept.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("You are not logged in.")
		return nil
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}
