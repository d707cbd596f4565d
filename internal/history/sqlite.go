// internal/history/sqlite.go
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/law-makers/pricewatch/pkg/models"
	_ "modernc.org/sqlite"
)

// Schema for the observations table
const Schema = `
CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	checked_at INTEGER NOT NULL,
	url TEXT NOT NULL,
	alert_price TEXT NOT NULL,
	check_stock INTEGER NOT NULL,
	title TEXT NOT NULL,
	price TEXT,
	stock TEXT,
	alert INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_url ON observations(url, checked_at);
`

// SQLiteSink stores each record as a row of the observations table
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Append(ctx context.Context, checkedAt time.Time, records []models.EvaluatedRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations
		(checked_at, url, alert_price, check_stock, title, price, stock, alert)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		var price, stock sql.NullString
		if !models.IsUnavailable(r.Price) {
			price = sql.NullString{String: r.Price.String(), Valid: true}
		}
		if r.Stock != models.StockNotApplicable {
			stock = sql.NullString{String: r.Stock.String(), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			checkedAt.UnixMilli(), r.URL, r.AlertPrice.String(), r.CheckStock,
			r.Title, price, stock, r.Alert,
		); err != nil {
			return fmt.Errorf("failed to insert observation for %s: %w", r.URL, err)
		}
	}

	return tx.Commit()
}

// Observation is one stored row
type Observation struct {
	CheckedAt time.Time
	URL       string
	Title     string
	Price     string
	Stock     string
	Alert     bool
}

// Latest returns the most recent observations for url, newest first
func (s *SQLiteSink) Latest(ctx context.Context, url string, limit int) ([]Observation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT checked_at, url, title, price, stock, alert
		FROM observations WHERE url = ? ORDER BY checked_at DESC, id DESC LIMIT ?`, url, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var (
			o            Observation
			ms           int64
			price, stock sql.NullString
		)
		if err := rows.Scan(&ms, &o.URL, &o.Title, &price, &stock, &o.Alert); err != nil {
			return nil, err
		}
		o.CheckedAt = time.UnixMilli(ms)
		o.Price = price.String
		o.Stock = stock.String
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
