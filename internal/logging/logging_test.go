package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, closer, err := New("debug", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug().Str("round", "r1").Msg("hello")
	closer.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"round":"r1"`) || !strings.Contains(string(b), `"message":"hello"`) {
		t.Fatalf("unexpected log output %q", b)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, closer, err := New("warn", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info().Msg("quiet")
	closer.Close()

	b, _ := os.ReadFile(path)
	if len(b) != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", b)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
