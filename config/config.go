// Package config loads the secrulefmt configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"secrulelang/logging"
	"secrulelang/ruleset"
)

// Main is the top level configuration.
type Main struct {
	Log   Log
	Parse Parse
}

// Log configures logging.
type Log struct {
	Level  string
	Format string
	File   string // Log to this file instead of stderr when set.
}

// Parse configures rule file loading.
type Parse struct {
	Workers     int
	ErrorPolicy ruleset.ErrorPolicy
}

// Load reads configuration from the optional file at path and from SECRULEFMT_ environment variables.
// Environment variables take precedence over the file, and the file over defaults.
func Load(path string) (*Main, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("log.file", "")
	v.SetDefault("parse.workers", 0)
	v.SetDefault("parse.error_policy", ruleset.FailFast.String())

	v.SetEnvPrefix("SECRULEFMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	policy, err := ruleset.ParseErrorPolicy(v.GetString("parse.error_policy"))
	if err != nil {
		return nil, err
	}

	cfg := &Main{
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Parse: Parse{
			Workers:     v.GetInt("parse.workers"),
			ErrorPolicy: policy,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Main) error {
	if cfg.Parse.Workers < 0 {
		return fmt.Errorf("parse.workers must not be negative, got %d", cfg.Parse.Workers)
	}
	if cfg.Log.Format != logging.FormatConsole && cfg.Log.Format != logging.FormatJSON {
		return fmt.Errorf("log.format must be %s or %s, got %q", logging.FormatConsole, logging.FormatJSON, cfg.Log.Format)
	}
	return nil
}
