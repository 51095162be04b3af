package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "FX_BASE_URL", "FX_TIMEOUT", "FX_MAX_ATTEMPTS", "FX_BACKOFF", "FX_MAX_BACKOFF", "FX_INCLUDE_AMOUNT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.GinMode != "release" || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	want := FXConfig{
		BaseURL:     "http://localhost:4000",
		Timeout:     3 * time.Second,
		MaxAttempts: 3,
		Backoff:     200 * time.Millisecond,
		MaxBackoff:  time.Second,
	}
	if cfg.FX != want {
		t.Fatalf("unexpected fx defaults: %+v", cfg.FX)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", " Debug ")
	t.Setenv("FX_BASE_URL", " http://fx:4000 ")
	t.Setenv("FX_TIMEOUT", "750ms")
	t.Setenv("FX_MAX_ATTEMPTS", "5")
	t.Setenv("FX_BACKOFF", "50ms")
	t.Setenv("FX_MAX_BACKOFF", "300ms")
	t.Setenv("FX_INCLUDE_AMOUNT", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.GinMode != "debug" {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.FX.BaseURL != "http://fx:4000" || cfg.FX.Timeout != 750*time.Millisecond || cfg.FX.MaxAttempts != 5 {
		t.Fatalf("unexpected fx config: %+v", cfg.FX)
	}
	if cfg.FX.Backoff != 50*time.Millisecond || cfg.FX.MaxBackoff != 300*time.Millisecond || !cfg.FX.IncludeAmount {
		t.Fatalf("unexpected fx retry config: %+v", cfg.FX)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		want error
	}{
		{name: "port", key: "PORT", val: "70000", want: ErrInvalidPort},
		{name: "timeout", key: "FX_TIMEOUT", val: "-1s", want: ErrInvalidFXTimeout},
		{name: "attempts", key: "FX_MAX_ATTEMPTS", val: "0", want: ErrInvalidFXAttempts},
		{name: "backoff", key: "FX_BACKOFF", val: "-5ms", want: ErrInvalidFXBackoff},
		{name: "shutdown", key: "SHUTDOWN_TIMEOUT", val: "-1s", want: ErrInvalidShutdownDur},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFXConfig_MaxQuoteDuration(t *testing.T) {
	c := FXConfig{Timeout: 3 * time.Second, MaxAttempts: 3, MaxBackoff: time.Second}
	if got := c.MaxQuoteDuration(); got != 11*time.Second {
		t.Fatalf("expected 11s, got %s", got)
	}
}
