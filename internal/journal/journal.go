// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records the outcome of every conversion in a SQLite
// database so past runs can be listed and exported.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Journal is the conversion history store.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one recorded conversion.
type Entry struct {
	ID          int64     `json:"id" yaml:"id"`
	RunID       string    `json:"run_id" yaml:"run_id"`
	Source      string    `json:"source" yaml:"source"`
	Destination string    `json:"destination" yaml:"destination"`
	Kind        string    `json:"kind" yaml:"kind"`
	OCR         string    `json:"ocr" yaml:"ocr"`
	OK          bool      `json:"ok" yaml:"ok"`
	Method      string    `json:"method,omitempty" yaml:"method,omitempty"`
	Pages       int       `json:"pages" yaml:"pages"`
	FailureKind string    `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	RecordedAt  time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// QueryOptions filters List and the exports.
type QueryOptions struct {
	// Limit caps the number of entries. Zero means no limit.
	Limit int

	// FailedOnly restricts results to failed conversions.
	FailedOnly bool

	// Source restricts results to one source path.
	Source string

	// RunID restricts results to one batch or watcher session.
	RunID string
}

// NewRunID returns an identifier grouping the conversions of one batch or
// watcher session.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates the journal database at path, creating the parent
// directory if needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT,
			kind TEXT,
			ocr TEXT,
			ok INTEGER NOT NULL,
			method TEXT,
			pages INTEGER,
			failure_kind TEXT,
			message TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of req under runID.
func (j *Journal) Record(ctx context.Context, runID string, res types.ConversionResult, req types.ConversionRequest) error {
	dst := res.OutputPath
	if dst == "" {
		dst = req.Destination
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO conversions
			(run_id, source, destination, kind, ocr, ok, method, pages, failure_kind, message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, req.Source, dst, string(req.Kind), string(req.OCR),
		res.OK, string(res.Method), res.Pages, res.Kind, res.Message,
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", req.Source, err)
	}
	return nil
}

// List returns matching entries, most recent first.
func (j *Journal) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, run_id, source, destination, kind, ocr, ok, method, pages,
			failure_kind, message, recorded_at
		FROM conversions
		WHERE 1=1`)

	if opts.FailedOnly {
		qb.WriteString(` AND ok = 0`)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	if opts.RunID != "" {
		qb.WriteString(` AND run_id = ?`)
		args = append(args, opts.RunID)
	}
	qb.WriteString(` ORDER BY id DESC`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := j.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                            Entry
			dst, kind, ocr, method, failureKind, message sql.NullString
			pages                                        sql.NullInt64
			recordedAt                                   string
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Source, &dst, &kind, &ocr, &e.OK,
			&method, &pages, &failureKind, &message, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Destination = dst.String
		e.Kind = kind.String
		e.OCR = ocr.String
		e.Method = method.String
		e.Pages = int(pages.Int64)
		e.FailureKind = failureKind.String
		e.Message = message.String
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes matching entries to w as a YAML sequence.
func (j *Journal) ExportYAML(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := j.List(ctx, opts)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes matching entries to w as an indented JSON array.
func (j *Journal) ExportJSON(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := j.List(ctx, opts)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
