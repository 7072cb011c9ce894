package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/somapoll/internal/flagx"
	"github.com/dmitrijs2005/somapoll/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept "15m" or
// integer nanoseconds.
type JsonConfig struct {
	ListenAddr                  string         `json:"listen_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RequireOTP                  *bool          `json:"require_otp"`
	OTPValidityDuration         timex.Duration `json:"otp_validity_duration"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
}

// parseJson overlays config with the JSON file named by -c/-config, if any.
// Absent fields keep their current values. Panics on read or decode errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RequireOTP != nil {
		config.RequireOTP = *c.RequireOTP
	}
	if c.OTPValidityDuration.Duration > 0 {
		config.OTPValidityDuration = c.OTPValidityDuration.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
}
