// Package cli provides the interactive somapoll command-line client.
//
// It sits on top of a provider.Provider: the session snapshot drives the
// prompt and the route guard, and every command goes through the auth or
// catalog service. Typical flow: check the stored session on start, then
// sign up or log in, browse candidates and parties, log out.
//
// Commands:
//   - help, exit | quit
//   - login, signup, verify-otp, resend-otp, check
//   - whoami, refresh, logout
//   - candidates [id], parties [id]
//
// whoami, candidates, parties and logout need an authenticated session.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
