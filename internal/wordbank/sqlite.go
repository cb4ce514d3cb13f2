package wordbank

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Schema is the layout LoadSQLite expects. It is exported so tools and tests
// can build a bank file.
const Schema = `
CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS hints (
	word_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY (word_id, position),
	FOREIGN KEY (word_id) REFERENCES words (id)
);`

// LoadSQLite reads a bank from a SQLite file. Words come back in id order and
// each word's hints in position order. The file is only read.
func LoadSQLite(path string) ([]WordEntry, error) {
	return LoadSQLiteContext(context.Background(), path)
}

// LoadSQLiteContext is LoadSQLite with a caller-supplied context.
func LoadSQLiteContext(ctx context.Context, path string) ([]WordEntry, error) {
	// sql.Open would silently create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, loadErr(path, -1, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, loadErr(path, -1, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, word, category FROM words ORDER BY id ASC`)
	if err != nil {
		return nil, loadErr(path, -1, fmt.Errorf("query words: %w", err))
	}
	var entries []WordEntry
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id       int64
			word     string
			category sql.NullString
		)
		if err := rows.Scan(&id, &word, &category); err != nil {
			rows.Close()
			return nil, loadErr(path, -1, fmt.Errorf("scan word row: %w", err))
		}
		index[id] = len(entries)
		entries = append(entries, WordEntry{Word: word, Category: category.String, Hints: []string{}})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, loadErr(path, -1, err)
	}

	hintRows, err := db.QueryContext(ctx, `SELECT word_id, text FROM hints ORDER BY word_id ASC, position ASC`)
	if err != nil {
		return nil, loadErr(path, -1, fmt.Errorf("query hints: %w", err))
	}
	defer hintRows.Close()
	for hintRows.Next() {
		var (
			wordID int64
			text   string
		)
		if err := hintRows.Scan(&wordID, &text); err != nil {
			return nil, loadErr(path, -1, fmt.Errorf("scan hint row: %w", err))
		}
		i, ok := index[wordID]
		if !ok {
			return nil, loadErr(path, -1, fmt.Errorf("hint references unknown word id %d", wordID))
		}
		entries[i].Hints = append(entries[i].Hints, text)
	}
	if err := hintRows.Err(); err != nil {
		return nil, loadErr(path, -1, err)
	}

	return validate(path, entries)
}
