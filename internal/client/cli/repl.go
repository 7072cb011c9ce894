package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	VerifyOTP(ctx context.Context) error
	ResendOTP(ctx context.Context) error
	Check(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Candidates(ctx context.Context, args []string) error
	Parties(ctx context.Context, args []string) error
}

// protected commands are refused while the session is not authenticated.
var protected = map[string]bool{
	"whoami":     true,
	"candidates": true,
	"parties":    true,
	"logout":     true,
}

const (
	helpSignedIn  = "Available commands: whoami, refresh, candidates [id], parties [id], logout, exit"
	helpSignedOut = "Available commands: login, signup, verify-otp, resend-otp, check, refresh, exit"
)

// runREPL reads one command per line and dispatches it to a. Every command
// finishes before the next prompt is shown. The loop exits on scanner EOF or
// "exit"/"quit".
//
// Handler errors are printed and otherwise ignored so a failing command never
// ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("somapoll %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isAuthenticated() {
			printlnFn("Please log in first.")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
		case "login":
			err = a.Login(ctx)
		case "signup", "register":
			err = a.Signup(ctx)
		case "verify-otp":
			err = a.VerifyOTP(ctx)
		case "resend-otp":
			err = a.ResendOTP(ctx)
		case "check":
			err = a.Check(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "candidates":
			err = a.Candidates(ctx, args)
		case "parties":
			err = a.Parties(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
