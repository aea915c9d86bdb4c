package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password, creates the account and
// starts a session for it.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return a.handleAuthError(err)
	}

	a.startSession(sess)
	if err := a.sessions.Save(sess); err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err)
	}

	fmt.Fprintf(a.out, "Registered as %s\n", sess.User.Email)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.handleAuthError(err)
	}

	a.startSession(sess)
	if err := a.sessions.Save(sess); err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err)
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", sess.User.Name)
	return nil
}

// Logout forgets the session locally. Tokens are not revocable, so the
// server is not contacted.
func (a *App) Logout(ctx context.Context) error {
	a.endSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
