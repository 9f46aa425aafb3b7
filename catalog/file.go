// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaText string

// catalogSchema is compiled once; the embedded document is a build-time
// constant, so a compile failure is a programmer error.
var catalogSchema = jsonschema.MustCompileString("catalog.schema.json", schemaText)

// Format identifies an on-disk catalog encoding.
type Format int

const (
	FormatJSON     Format = iota // plain JSON array
	FormatJSONZstd               // zstd-compressed JSON array
	FormatSQLite                 // SQLite database with an attractions table
)

// FormatOf picks the encoding from a file name suffix.
func FormatOf(path string) Format {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return FormatJSONZstd
	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"), strings.HasSuffix(path, ".sqlite3"):
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Decode reads a JSON catalog ([{"name": ..., "fv": [10 numbers]}, ...]),
// validates it against the embedded schema, and returns the catalog.
func Decode(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}

	var doc any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err = catalogSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	var items []Attraction
	if err = json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	return New(items...)
}

// Encode writes c as an indented JSON array in catalog order.
func Encode(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.items); err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}

	return nil
}

// DecodeZstd reads a zstd-compressed JSON catalog.
func DecodeZstd(r io.Reader) (*Catalog, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: zstd: %w", err)
	}
	defer dec.Close()

	return Decode(dec)
}

// EncodeZstd writes c as zstd-compressed JSON.
func EncodeZstd(w io.Writer, c *Catalog) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("catalog: zstd: %w", err)
	}
	if err = Encode(enc, c); err != nil {
		_ = enc.Close()
		return err
	}

	return enc.Close()
}

// Open loads a catalog from path, choosing the decoder by FormatOf(path).
func Open(ctx context.Context, path string) (*Catalog, error) {
	if FormatOf(path) == FormatSQLite {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		db, err := sql.Open(sqliteDriver, path)
		if err != nil {
			return nil, fmt.Errorf("catalog: open %s: %w", path, err)
		}
		defer db.Close()

		return LoadSQLite(ctx, db)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var c *Catalog
	if FormatOf(path) == FormatJSONZstd {
		c, err = DecodeZstd(bytes.NewReader(raw))
	} else {
		c, err = Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// WriteFile stores c at path, choosing the encoder by FormatOf(path).
// SQLite targets are created if missing and their attractions table replaced.
func WriteFile(ctx context.Context, path string, c *Catalog) error {
	if FormatOf(path) == FormatSQLite {
		db, err := sql.Open(sqliteDriver, path)
		if err != nil {
			return fmt.Errorf("catalog: open %s: %w", path, err)
		}
		defer db.Close()

		return SaveSQLite(ctx, db, c)
	}

	var buf bytes.Buffer
	var err error
	if FormatOf(path) == FormatJSONZstd {
		err = EncodeZstd(&buf, c)
	} else {
		err = Encode(&buf, c)
	}
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	return nil
}
