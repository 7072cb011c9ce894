package models

// Snapshot is an immutable copy of the client's belief about the current
// authentication state.
type Snapshot struct {
	IsAuthenticated bool
	EmailVerified   bool
	Username        *string
	Loading         bool
}

// Result is what every auth operation hands back to its caller. Message is
// meant to be shown to the user verbatim.
type Result struct {
	Success     bool
	Message     string
	Errors      []string
	OTPRequired bool
	Email       string
}
