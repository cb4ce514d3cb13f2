package wordbank

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catBank = `{"words": [{"word": " Cat ", "category": "animal", "hints": ["small", "pet", " meows "]}]}`

func TestLoadJSON(t *testing.T) {
	entries, err := Load(strings.NewReader(catBank), FormatJSON)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Word != "Cat" || e.Key() != "cat" {
		t.Fatalf("expected trimmed word Cat/cat, got %q/%q", e.Word, e.Key())
	}
	if got := strings.Join(e.Hints, "|"); got != "small|pet|meows" {
		t.Fatalf("unexpected hints %q", got)
	}
	if !e.Matches("CAT") || e.Matches("dog") {
		t.Fatalf("Matches should be case-insensitive and exact")
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
words:
  - word: dog
    category: animal
    hints: [barks, loyal]
  - word: owl
    hints: []
`
	entries, err := Load(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Category != "" || len(entries[1].Hints) != 0 {
		t.Fatalf("expected empty category and hints for owl, got %+v", entries[1])
	}
}

func TestLoadRejectsBadBanks(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
		idx  int
	}{
		{"missing hints", `{"words":[{"word":"cat","category":"x"}]}`, ErrMissingHints, 0},
		{"missing word", `{"words":[{"word":"cat","hints":[]},{"category":"x","hints":["a"]}]}`, ErrMissingWord, 1},
		{"blank word", `{"words":[{"word":"   ","hints":["a"]}]}`, ErrMissingWord, 0},
		{"digits only", `{"words":[{"word":"cat","hints":[]},{"word":"42","hints":["x"]}]}`, ErrNoLetters, 1},
		{"punctuation only", `{"words":[{"word":" -- ","hints":["x"]}]}`, ErrNoLetters, 0},
		{"duplicate", `{"words":[{"word":"cat","hints":[]},{"word":"CAT","hints":[]}]}`, ErrDuplicateWord, 1},
		{"empty", `{"words":[]}`, ErrEmptyBank, -1},
		{"no words key", `{}`, ErrEmptyBank, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc), FormatJSON)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if le.Index != tc.idx {
				t.Fatalf("expected index %d, got %d", tc.idx, le.Index)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader(`{"words": [`), FormatJSON)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	_, err := LoadFile("bank.txt")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadFileByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.yml")
	if err := os.WriteFile(path, []byte("words:\n  - word: cat\n    hints: [small]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entries[0].Word != "cat" {
		t.Fatalf("expected cat, got %q", entries[0].Word)
	}
}

func TestDefaultBank(t *testing.T) {
	entries, err := Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected several default words, got %d", len(entries))
	}
	for _, e := range entries {
		if len(e.Hints) == 0 {
			t.Fatalf("default word %q has no hints", e.Word)
		}
	}
	if got, want := len(AllHints(entries)), 3*len(entries); got != want {
		t.Fatalf("expected %d hints in corpus, got %d", want, got)
	}
}

func TestHintListIsCopy(t *testing.T) {
	e := WordEntry{Word: "cat", Hints: []string{"small"}}
	h := e.HintList()
	h[0] = "changed"
	if e.Hints[0] != "small" {
		t.Fatalf("HintList leaked the backing slice")
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	stmts := []string{
		`INSERT INTO words (id, word, category) VALUES (1, 'cat', 'animal'), (2, 'dog', 'animal'), (3, 'owl', '')`,
		`INSERT INTO hints (word_id, position, text) VALUES (1, 2, 'meows'), (1, 0, 'small'), (1, 1, 'pet'), (2, 0, 'barks')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if got := strings.Join(entries[0].Hints, "|"); got != "small|pet|meows" {
		t.Fatalf("expected hints in position order, got %q", got)
	}
	if entries[2].Word != "owl" || len(entries[2].Hints) != 0 {
		t.Fatalf("expected owl with no hints, got %+v", entries[2])
	}
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := LoadSQLite(path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("loader must not create the bank file")
	}
}
