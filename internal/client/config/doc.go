// Package config loads runtime configuration for the somapoll CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "backend_url": "http://localhost:8000",
//	  "request_timeout": "15s",
//	  "database_path": "somapoll.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "endpoints": {"login": "/api/login/"}
//	}
//
// Endpoint paths missing from the file keep their defaults.
package config
