// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/fairground/featmat"
)

const sqliteDriver = "sqlite"

const createAttractions = `CREATE TABLE IF NOT EXISTS attractions (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	fv       TEXT NOT NULL
)`

// LoadSQLite reads the attractions table ordered by position. The fv column
// holds the feature vector as a JSON array of exactly featmat.Width numbers.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, `SELECT position, name, fv FROM attractions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query attractions: %w", err)
	}
	defer rows.Close()

	var items []Attraction
	for rows.Next() {
		var (
			pos  int64
			name string
			fv   string
			vals []float64
		)
		if err = rows.Scan(&pos, &name, &fv); err != nil {
			return nil, fmt.Errorf("catalog: scan attraction: %w", err)
		}
		if err = json.Unmarshal([]byte(fv), &vals); err != nil {
			return nil, fmt.Errorf("catalog: position %d fv: %v: %w", pos, err, ErrInvalidRecord)
		}
		if len(vals) != featmat.Width {
			return nil, fmt.Errorf("catalog: position %d has %d features: %w", pos, len(vals), ErrInvalidRecord)
		}
		a := Attraction{Name: name}
		copy(a.Features[:], vals)
		items = append(items, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate attractions: %w", err)
	}

	return New(items...)
}

// SaveSQLite creates the attractions table if needed and replaces its
// contents with c, in one transaction.
func SaveSQLite(ctx context.Context, db *sql.DB, c *Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, createAttractions); err != nil {
		return fmt.Errorf("catalog: create table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM attractions`); err != nil {
		return fmt.Errorf("catalog: clear table: %w", err)
	}
	for i, a := range c.items {
		fv, err := json.Marshal(a.Features)
		if err != nil {
			return fmt.Errorf("catalog: encode %q: %w", a.Name, err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO attractions (position, name, fv) VALUES (?, ?, ?)`,
			i, a.Name, string(fv),
		); err != nil {
			return fmt.Errorf("catalog: insert %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}
