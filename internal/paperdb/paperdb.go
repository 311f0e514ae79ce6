// Package paperdb persists extracted paper records. It is a thin
// consumer of the segmentation output: one row per paper, uniqueness on
// doi, title and year+filename enforced by the schema.
package paperdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS paper (
  id                  INTEGER PRIMARY KEY AUTOINCREMENT,
  title               TEXT    NOT NULL,
  authors             TEXT    NOT NULL,
  year                INTEGER NOT NULL,
  abstract            TEXT,
  text                TEXT    NOT NULL,
  "references"        TEXT,
  start_page          INTEGER,
  end_page            INTEGER,
  subject             TEXT,
  filename            TEXT    NOT NULL,
  editors             TEXT,
  doi                 TEXT,
  isbn                TEXT,
  issn                TEXT,
  proceeding_title    TEXT,
  series_title        TEXT,
  publisher           TEXT,
  publication_place   TEXT,
  conference_date     TEXT,
  conference_location TEXT,
  session_title       TEXT,
  publication_type    TEXT,
  language            TEXT,
  peer_review_status  TEXT,
  UNIQUE (doi),
  UNIQUE (title),
  UNIQUE (year, filename)
)`

// columns in insert order, id excluded.
var columns = []string{
	"title", "authors", "year", "abstract", "text", `"references"`,
	"start_page", "end_page", "subject", "filename", "editors",
	"doi", "isbn", "issn", "proceeding_title", "series_title",
	"publisher", "publication_place", "conference_date",
	"conference_location", "session_title", "publication_type",
	"language", "peer_review_status",
}

// Paper is one row of the paper table. Title, Authors, Year, Text and
// Filename are required; everything else is nullable metadata.
type Paper struct {
	Title    string
	Authors  string
	Year     int
	Abstract *string
	Text     string
	// References holds the bibliography block, absent when the engine
	// could not validate a heading.
	References *string
	StartPage  *int
	EndPage    *int
	Subject    *string
	Filename   string
	Editors    *string
	DOI        *string
	ISBN       *string
	ISSN       *string
	ProceedingTitle    *string
	SeriesTitle        *string
	Publisher          *string
	PublicationPlace   *string
	ConferenceDate     *string
	ConferenceLocation *string
	SessionTitle       *string
	PublicationType    *string
	Language           *string
	PeerReviewStatus   *string
}

// Validate checks the NOT NULL fields before an insert is attempted, so
// a malformed record fails with a usable message instead of a driver
// error.
func (p *Paper) Validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("paperdb: paper %q: empty title", p.Filename)
	case strings.TrimSpace(p.Authors) == "":
		return fmt.Errorf("paperdb: paper %q: empty authors", p.Filename)
	case p.Year == 0:
		return fmt.Errorf("paperdb: paper %q: missing year", p.Filename)
	case p.Text == "":
		return fmt.Errorf("paperdb: paper %q: empty text", p.Filename)
	case strings.TrimSpace(p.Filename) == "":
		return fmt.Errorf("paperdb: paper with empty filename")
	}
	return nil
}

func (p *Paper) values() []any {
	return []any{
		p.Title, p.Authors, p.Year, p.Abstract, p.Text, p.References,
		p.StartPage, p.EndPage, p.Subject, p.Filename, p.Editors,
		p.DOI, p.ISBN, p.ISSN, p.ProceedingTitle, p.SeriesTitle,
		p.Publisher, p.PublicationPlace, p.ConferenceDate,
		p.ConferenceLocation, p.SessionTitle, p.PublicationType,
		p.Language, p.PeerReviewStatus,
	}
}

// Store wraps the sqlite database holding the paper table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file using the pure Go sqlite
// driver.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("paperdb: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateSchema creates the paper table if it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("paperdb: create schema: %w", err)
	}
	return nil
}

// batchSize is how many rows go into one transaction.
const batchSize = 50

// Skipped describes a row rejected by a uniqueness constraint.
type Skipped struct {
	Index int
	Title string
	Err   error
}

// InsertResult summarizes a batch insert.
type InsertResult struct {
	Inserted int
	Skipped  []Skipped
}

// InsertPapers inserts records in transaction batches. Rows violating a
// UNIQUE constraint (duplicate doi, title or year+filename) are skipped
// and reported; any other failure aborts the batch.
func (s *Store) InsertPapers(ctx context.Context, papers []Paper) (InsertResult, error) {
	insertSQL := fmt.Sprintf(
		"INSERT INTO paper (%s) VALUES (%s)",
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)

	var res InsertResult
	for start := 0; start < len(papers); start += batchSize {
		end := min(len(papers), start+batchSize)
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return res, fmt.Errorf("paperdb: begin batch: %w", err)
		}
		for i := start; i < end; i++ {
			p := &papers[i]
			if err := p.Validate(); err != nil {
				tx.Rollback()
				return res, err
			}
			if _, err := tx.ExecContext(ctx, insertSQL, p.values()...); err != nil {
				if isUniqueViolation(err) {
					res.Skipped = append(res.Skipped, Skipped{Index: i, Title: p.Title, Err: err})
					continue
				}
				tx.Rollback()
				return res, fmt.Errorf("paperdb: insert %q: %w", p.Filename, err)
			}
			res.Inserted++
		}
		if err := tx.Commit(); err != nil {
			return res, fmt.Errorf("paperdb: commit batch: %w", err)
		}
	}
	return res, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Count returns the number of rows in the paper table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM paper").Scan(&n); err != nil {
		return 0, fmt.Errorf("paperdb: count: %w", err)
	}
	return n, nil
}

// YearCount is the number of papers of one publication year.
type YearCount struct {
	Year  int
	Count int
}

// CountByYear returns per-year paper counts in ascending year order,
// used to verify an ingest run.
func (s *Store) CountByYear(ctx context.Context) ([]YearCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, COUNT(*) FROM paper GROUP BY year ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("paperdb: count by year: %w", err)
	}
	defer rows.Close()

	var out []YearCount
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("paperdb: scan year count: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}
