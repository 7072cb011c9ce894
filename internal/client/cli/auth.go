package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/client/services"
	"github.com/dmitrijs2005/somapoll/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// printResult shows a service result verbatim, followed by any detail lines.
func (a *App) printResult(r models.Result) {
	fmt.Fprintln(a.out, r.Message)
	for _, e := range r.Errors {
		if e != r.Message {
			fmt.Fprintln(a.out, " -", e)
		}
	}
}

// rememberChallenge stores the email of a one-time code challenge and tells
// the user what to do next.
func (a *App) rememberChallenge(r models.Result, fallback string) {
	if !r.OTPRequired {
		return
	}
	a.pendingEmail = r.Email
	if a.pendingEmail == "" {
		a.pendingEmail = fallback
	}
	fmt.Fprintln(a.out, "Type 'verify-otp' to enter the code.")
}

// readTrimmedPassword prompts for a password and returns it trimmed. The raw bytes
// are wiped before returning.
func (a *App) readTrimmedPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer shared.WipeByteArray(pw)
	return strings.TrimSpace(string(pw)), nil
}

// Login prompts for credentials and signs in. Form errors are reported
// without contacting the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readTrimmedPassword()
	if err != nil {
		return err
	}

	if err := validateCredentials(email, password); err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	res := a.provider.Auth().Login(ctx, email, password)
	a.printResult(res)
	a.rememberChallenge(res, email)
	return nil
}

// Signup walks through the registration form, checks that the username and
// email are free and then registers.
func (a *App) Signup(ctx context.Context) error {
	var f signupForm
	var err error

	if f.FullName, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if f.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.Password, err = a.readTrimmedPassword(); err != nil {
		return err
	}
	if f.Structure, err = getSimpleText(a.reader, "Enter campus structure", a.out); err != nil {
		return err
	}

	f.normalize()
	if err := f.validate(); err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}

	auth := a.provider.Auth()
	if check := auth.CheckExistingUserData(ctx, f.Username, f.Email); !check.Success {
		a.printResult(check)
		return nil
	}

	res := auth.Signup(ctx, services.SignupRequest{
		Username:  f.Username,
		Email:     f.Email,
		Password:  f.Password,
		FullName:  f.FullName,
		Structure: f.Structure,
	})
	a.printResult(res)
	a.rememberChallenge(res, f.Email)
	return nil
}

func (a *App) VerifyOTP(ctx context.Context) error {
	email, err := getTextOr(a.reader, "Enter email", a.pendingEmail, a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the code from your email", a.out)
	if err != nil {
		return err
	}
	if email == "" || code == "" {
		fmt.Fprintln(a.out, "Email and code are required")
		return nil
	}

	res := a.provider.Auth().VerifyOTP(ctx, email, code)
	a.printResult(res)
	if res.Success {
		a.pendingEmail = ""
	}
	return nil
}

func (a *App) ResendOTP(ctx context.Context) error {
	email, err := getTextOr(a.reader, "Enter email", a.pendingEmail, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Fprintln(a.out, "Email is required")
		return nil
	}

	a.printResult(a.provider.Auth().ResendOTP(ctx, email))
	return nil
}

// Check reports whether a username and email are still free.
func (a *App) Check(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	a.printResult(a.provider.Auth().CheckExistingUserData(ctx, strings.ToLower(username), email))
	return nil
}

// Logout ends the session on the backend and locally.
func (a *App) Logout(ctx context.Context) error {
	a.provider.Auth().Logout(ctx)
	a.pendingEmail = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
