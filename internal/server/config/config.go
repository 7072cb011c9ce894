// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the somapoll development backend.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued tokens and the jwt cookie.
//   - RequireOTP: whether login asks for an emailed one-time code first.
//   - OTPValidityDuration: how long an issued code stays valid.
//   - LogLevel / LogFormat: slog level and handler (text|json).
type Config struct {
	ListenAddr                  string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	RequireOTP                  bool
	OTPValidityDuration         time.Duration
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.RequireOTP = false
	c.OTPValidityDuration = 10 * time.Minute
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
