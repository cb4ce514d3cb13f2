package config

import (
	"strings"
	"testing"
	"time"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.WordBankPath != "" || cfg.LogLevel != "info" || cfg.LogFile != "wordguess.log" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RoundDelay != 1500*time.Millisecond || cfg.MaxAttempts != 6 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"WORDBANK_PATH": "bank.yaml",
		"LOG_LEVEL":     "debug",
		"LOG_FILE":      "",
		"ROUND_DELAY":   "2s",
		"MAX_ATTEMPTS":  "8",
	}))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.WordBankPath != "bank.yaml" || cfg.LogLevel != "debug" || cfg.LogFile != "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RoundDelay != 2*time.Second || cfg.MaxAttempts != 8 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"ROUND_DELAY":  {"ROUND_DELAY": "soon"},
		"MAX_ATTEMPTS": {"MAX_ATTEMPTS": "0"},
	}
	for key, vars := range cases {
		_, err := FromEnv(env(vars))
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("expected error naming %s, got %v", key, err)
		}
	}
}
