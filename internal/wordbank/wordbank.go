// Package wordbank loads the fixed collection of words the game draws from.
//
// A bank is a list of {word, category, hints} records. It can come from a JSON
// or YAML document shaped like {"words": [...]}, from a SQLite file, or from the
// default bank embedded in the binary. Once loaded, a bank is never mutated.
package wordbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed words.json
var embeddedBank []byte

// Format names a document encoding understood by Load.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// --- DATA STRUCTURES ---

// WordEntry is one playable word. Treat it as immutable.
type WordEntry struct {
	Word     string
	Category string
	Hints    []string
}

// Key is the case-insensitive identity of the entry.
func (e WordEntry) Key() string { return strings.ToLower(e.Word) }

// Matches reports whether guess is this entry's word, ignoring case.
func (e WordEntry) Matches(guess string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), e.Word)
}

// HintList returns a copy of the hints so callers cannot alter the bank.
// Code outside this package reads hints through it.
func (e WordEntry) HintList() []string {
	out := make([]string, len(e.Hints))
	copy(out, e.Hints)
	return out
}

// rawEntry mirrors the on-disk record. Hints is a pointer so a missing key
// can be told apart from an empty list.
type rawEntry struct {
	Word     string    `json:"word" yaml:"word"`
	Category string    `json:"category" yaml:"category"`
	Hints    *[]string `json:"hints" yaml:"hints"`
}

type rawBank struct {
	Words []rawEntry `json:"words" yaml:"words"`
}

// --- ERRORS ---

var (
	ErrMissingWord   = errors.New("missing word")
	ErrNoLetters     = errors.New("word has no letters")
	ErrMissingHints  = errors.New("missing hints")
	ErrDuplicateWord = errors.New("duplicate word")
	ErrEmptyBank     = errors.New("bank has no words")
	ErrUnknownFormat = errors.New("unknown bank format")
)

// LoadError reports a bank that is missing, malformed, or fails validation.
// Index is the offending entry, or -1 when the problem is not entry-specific.
type LoadError struct {
	Source string
	Index  int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("wordbank %s: entry %d: %v", e.Source, e.Index, e.Err)
	}
	return fmt.Sprintf("wordbank %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(source string, index int, err error) *LoadError {
	return &LoadError{Source: source, Index: index, Err: err}
}

// --- LOADING ---

// Default returns the bank compiled into the binary.
func Default() ([]WordEntry, error) {
	return decode("embedded", bytes.NewReader(embeddedBank), FormatJSON)
}

// Load decodes a bank document from r.
func Load(r io.Reader, format Format) ([]WordEntry, error) {
	return decode(string(format), r, format)
}

// LoadFile loads a bank from disk, choosing the decoder from the file extension.
func LoadFile(path string) ([]WordEntry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	case ".json":
		return openAndDecode(path, FormatJSON)
	case ".yaml", ".yml":
		return openAndDecode(path, FormatYAML)
	default:
		return nil, loadErr(path, -1, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path)))
	}
}

func openAndDecode(path string, format Format) ([]WordEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, -1, err)
	}
	defer f.Close()
	return decode(path, f, format)
}

func decode(source string, r io.Reader, format Format) ([]WordEntry, error) {
	var raw rawBank
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, loadErr(source, -1, fmt.Errorf("decode json: %w", err))
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, loadErr(source, -1, fmt.Errorf("decode yaml: %w", err))
		}
	default:
		return nil, loadErr(source, -1, fmt.Errorf("%w: %q", ErrUnknownFormat, format))
	}

	entries := make([]WordEntry, 0, len(raw.Words))
	for i, re := range raw.Words {
		if re.Hints == nil {
			return nil, loadErr(source, i, ErrMissingHints)
		}
		entries = append(entries, WordEntry{Word: re.Word, Category: re.Category, Hints: *re.Hints})
	}
	return validate(source, entries)
}

// validate trims every field and enforces the bank rules shared by all sources.
func validate(source string, entries []WordEntry) ([]WordEntry, error) {
	if len(entries) == 0 {
		return nil, loadErr(source, -1, ErrEmptyBank)
	}
	seen := make(map[string]int, len(entries))
	out := make([]WordEntry, len(entries))
	for i, e := range entries {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			return nil, loadErr(source, i, ErrMissingWord)
		}
		if strings.IndexFunc(word, unicode.IsLetter) < 0 {
			return nil, loadErr(source, i, ErrNoLetters)
		}
		key := strings.ToLower(word)
		if first, dup := seen[key]; dup {
			return nil, loadErr(source, i, fmt.Errorf("%w %q (first at entry %d)", ErrDuplicateWord, word, first))
		}
		seen[key] = i

		hints := make([]string, 0, len(e.Hints))
		for _, h := range e.Hints {
			if h = strings.TrimSpace(h); h != "" {
				hints = append(hints, h)
			}
		}
		out[i] = WordEntry{
			Word:     word,
			Category: strings.TrimSpace(e.Category),
			Hints:    hints,
		}
	}
	return out, nil
}

// AllHints flattens every hint in the bank, in bank order. This is the corpus
// the hint ranker is prepared from.
func AllHints(entries []WordEntry) []string {
	var all []string
	for _, e := range entries {
		all = append(all, e.Hints...)
	}
	return all
}
