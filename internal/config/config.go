// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLogLevel    = "info"
	defaultLogFile     = "wordguess.log"
	defaultRoundDelay  = 1500 * time.Millisecond
	defaultMaxAttempts = 6
)

type Config struct {
	WordBankPath string        // WORDBANK_PATH; empty means the embedded bank
	LogLevel     string        // LOG_LEVEL
	LogFile      string        // LOG_FILE; empty discards logs
	RoundDelay   time.Duration // ROUND_DELAY; pause before the next round starts
	MaxAttempts  int           // MAX_ATTEMPTS
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		WordBankPath: getEnv(lookup, "WORDBANK_PATH", ""),
		LogLevel:     getEnv(lookup, "LOG_LEVEL", defaultLogLevel),
		LogFile:      getEnv(lookup, "LOG_FILE", defaultLogFile),
		RoundDelay:   defaultRoundDelay,
		MaxAttempts:  defaultMaxAttempts,
	}

	if v, ok := lookup("ROUND_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("ROUND_DELAY %q: must be a non-negative duration", v)
		}
		cfg.RoundDelay = d
	}
	if v, ok := lookup("MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_ATTEMPTS %q: must be a positive integer", v)
		}
		cfg.MaxAttempts = n
	}
	return cfg, nil
}

// getEnv returns the value for k, or def when unset. An explicitly empty
// value is kept, so LOG_FILE= turns file logging off.
func getEnv(lookup func(string) (string, bool), k, def string) string {
	if v, ok := lookup(k); ok {
		return v
	}
	return def
}
