package glossary

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/termlink/internal/db"
)

// DefaultSet is the glossary set name used when none is given.
const DefaultSet = "default"

// SetInfo describes an imported glossary set.
type SetInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Terms  int    `json:"terms"`
}

// Store keeps authored glossary records in SQLite so several glossaries can
// be imported once and selected at startup.
type Store struct {
	db *db.DB
}

// NewStore creates a new glossary store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Import replaces the records of set with raw, preserving their order.
func (s *Store) Import(ctx context.Context, set, source string, raw []RawTerm) error {
	if set == "" {
		set = DefaultSet
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM glossary_terms WHERE set_name = ?`, set); err != nil {
		return fmt.Errorf("clearing set %s: %w", set, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO glossary_sets (name, source) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET source = excluded.source, imported_at = datetime('now')`,
		set, source,
	); err != nil {
		return fmt.Errorf("recording set %s: %w", set, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO glossary_terms (set_name, position, term_key, name, alias, level, plain, detail, analogy, mistake, example, scene, code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rt := range raw {
		if _, err := stmt.ExecContext(ctx, set, i, rt.Key, rt.Name, rt.Alias, rt.Level, rt.Plain,
			rt.Detail, rt.Analogy, rt.Mistake, rt.Example, rt.Scene, rt.Code); err != nil {
			return fmt.Errorf("inserting term %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns the records of set in their original order.
func (s *Store) Load(ctx context.Context, set string) ([]RawTerm, error) {
	if set == "" {
		set = DefaultSet
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM glossary_sets WHERE name = ?`, set).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up set %s: %w", set, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("glossary set %q: %w", set, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT term_key, name, alias, level, plain, detail, analogy, mistake, example, scene, code
		 FROM glossary_terms WHERE set_name = ? ORDER BY position`, set)
	if err != nil {
		return nil, fmt.Errorf("querying set %s: %w", set, err)
	}
	defer rows.Close()

	var out []RawTerm
	for rows.Next() {
		var rt RawTerm
		if err := rows.Scan(&rt.Key, &rt.Name, &rt.Alias, &rt.Level, &rt.Plain, &rt.Detail,
			&rt.Analogy, &rt.Mistake, &rt.Example, &rt.Scene, &rt.Code); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Sets lists the imported glossary sets.
func (s *Store) Sets(ctx context.Context) ([]SetInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.name, s.source, COUNT(t.position)
		 FROM glossary_sets s LEFT JOIN glossary_terms t ON t.set_name = s.name
		 GROUP BY s.name, s.source ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	defer rows.Close()

	var out []SetInfo
	for rows.Next() {
		var si SetInfo
		if err := rows.Scan(&si.Name, &si.Source, &si.Terms); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		out = append(out, si)
	}
	return out, rows.Err()
}
