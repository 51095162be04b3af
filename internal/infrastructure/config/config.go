package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is read once at startup and treated as immutable afterwards.
//
// Supported env vars (a .env file is autoloaded by cmd/api):
//   - PORT (default: 8080)
//   - GIN_MODE (default: release)
//   - FX_BASE_URL (default: http://localhost:4000)
//   - FX_TIMEOUT per attempt (default: 3s)
//   - FX_MAX_ATTEMPTS (default: 3)
//   - FX_BACKOFF linear step between attempts (default: 200ms)
//   - FX_MAX_BACKOFF cap of a single delay (default: 1s)
//   - FX_INCLUDE_AMOUNT send the amount to the provider (default: false)
//   - SHUTDOWN_TIMEOUT (default: 10s)
//
// Durations use Go syntax ("250ms", "3s").
type Config struct {
	Port            int
	GinMode         string
	ShutdownTimeout time.Duration
	FX              FXConfig
}

type FXConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MaxAttempts   int
	Backoff       time.Duration
	MaxBackoff    time.Duration
	IncludeAmount bool
}

var (
	ErrInvalidPort        = errors.New("PORT must be between 1 and 65535")
	ErrMissingFXBaseURL   = errors.New("FX_BASE_URL is required")
	ErrInvalidFXTimeout   = errors.New("FX_TIMEOUT must be positive")
	ErrInvalidFXAttempts  = errors.New("FX_MAX_ATTEMPTS must be at least 1")
	ErrInvalidFXBackoff   = errors.New("FX_BACKOFF and FX_MAX_BACKOFF must not be negative")
	ErrInvalidShutdownDur = errors.New("SHUTDOWN_TIMEOUT must be positive")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("FX_BASE_URL", "http://localhost:4000")
	v.SetDefault("FX_TIMEOUT", "3s")
	v.SetDefault("FX_MAX_ATTEMPTS", 3)
	v.SetDefault("FX_BACKOFF", "200ms")
	v.SetDefault("FX_MAX_BACKOFF", "1s")
	v.SetDefault("FX_INCLUDE_AMOUNT", false)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Port:            v.GetInt("PORT"),
		GinMode:         strings.ToLower(strings.TrimSpace(v.GetString("GIN_MODE"))),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		FX: FXConfig{
			BaseURL:       strings.TrimSpace(v.GetString("FX_BASE_URL")),
			Timeout:       v.GetDuration("FX_TIMEOUT"),
			MaxAttempts:   v.GetInt("FX_MAX_ATTEMPTS"),
			Backoff:       v.GetDuration("FX_BACKOFF"),
			MaxBackoff:    v.GetDuration("FX_MAX_BACKOFF"),
			IncludeAmount: v.GetBool("FX_INCLUDE_AMOUNT"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return ErrInvalidPort
	case c.FX.BaseURL == "":
		return ErrMissingFXBaseURL
	case c.FX.Timeout <= 0:
		return ErrInvalidFXTimeout
	case c.FX.MaxAttempts < 1:
		return ErrInvalidFXAttempts
	case c.FX.Backoff < 0 || c.FX.MaxBackoff < 0:
		return ErrInvalidFXBackoff
	case c.ShutdownTimeout <= 0:
		return ErrInvalidShutdownDur
	}
	return nil
}

// MaxQuoteDuration is the worst-case time a single quote lookup can take.
func (c FXConfig) MaxQuoteDuration() time.Duration {
	return time.Duration(c.MaxAttempts)*c.Timeout + time.Duration(c.MaxAttempts-1)*c.MaxBackoff
}
