package config

import "time"

// Endpoints holds backend paths relative to Config.BackendURL.
type Endpoints struct {
	CurrentUser       string `json:"current_user"`
	Login             string `json:"login"`
	Signup            string `json:"signup"`
	VerifySignup      string `json:"verify_signup"`
	CleanupSignup     string `json:"cleanup_signup"`
	CheckExistingUser string `json:"check_existing_user"`
	Logout            string `json:"logout"`
	VerifyOTP         string `json:"verify_otp"`
	Candidates        string `json:"candidates"`
	Parties           string `json:"parties"`
}

// DefaultEndpoints returns the paths served by the somaapp backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		CurrentUser:       "/somaapp/user/",
		Login:             "/somaapp/login/",
		Signup:            "/somaapp/signup/",
		VerifySignup:      "/somaapp/verify-signup/",
		CleanupSignup:     "/somaapp/cleanup-signup/",
		CheckExistingUser: "/somaapp/check-existing-user/",
		Logout:            "/somaapp/logout/",
		VerifyOTP:         "/somaapp/verify-otp/",
		Candidates:        "/somaapp/get-all-candidates/",
		Parties:           "/somaapp/get-all-parties/",
	}
}

// overlay copies every non-empty path from o into e.
func (e *Endpoints) overlay(o Endpoints) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&e.CurrentUser, o.CurrentUser)
	set(&e.Login, o.Login)
	set(&e.Signup, o.Signup)
	set(&e.VerifySignup, o.VerifySignup)
	set(&e.CleanupSignup, o.CleanupSignup)
	set(&e.CheckExistingUser, o.CheckExistingUser)
	set(&e.Logout, o.Logout)
	set(&e.VerifyOTP, o.VerifyOTP)
	set(&e.Candidates, o.Candidates)
	set(&e.Parties, o.Parties)
}

// Config holds runtime settings for the somapoll CLI.
//
// Fields:
//   - BackendURL: scheme://host:port of the backend API.
//   - Endpoints: per-operation paths joined onto BackendURL.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - DatabasePath: SQLite file holding the token slot and profile record.
//   - LogLevel / LogFormat: slog level (debug|info|warn|error) and handler (text|json).
type Config struct {
	BackendURL     string
	Endpoints      Endpoints
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8000"
	c.Endpoints = DefaultEndpoints()
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "somapoll.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
