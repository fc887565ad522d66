package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"uscalendar/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ DayStore = (*SQLiteStore)(nil)

// SQLiteStore implements DayStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, creates the
// schema and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", dbPath, err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS trading_days (
			market  TEXT NOT NULL,
			date    TEXT NOT NULL,
			open    INTEGER NOT NULL,
			weekend INTEGER NOT NULL,
			holiday TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (market, date)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteDays upserts days in a single transaction.
func (s *SQLiteStore) WriteDays(ctx context.Context, days []domain.TradingDay) error {
	if len(days) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trading_days (market, date, open, weekend, holiday)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (market, date) DO UPDATE SET
			open = excluded.open,
			weekend = excluded.weekend,
			holiday = excluded.holiday`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, string(d.Market), d.Date, d.Open, d.Weekend, d.Holiday); err != nil {
			return fmt.Errorf("writing %s %s: %w", d.Market, d.Date, err)
		}
	}
	return tx.Commit()
}

// ReadDays returns stored days for market within [from, to].
func (s *SQLiteStore) ReadDays(ctx context.Context, market domain.Market, from, to string) ([]domain.TradingDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT market, date, open, weekend, holiday
		FROM trading_days
		WHERE market = ? AND date >= ? AND date <= ?
		ORDER BY date`, string(market), from, to)
	if err != nil {
		return nil, fmt.Errorf("querying trading_days: %w", err)
	}
	defer rows.Close()

	var out []domain.TradingDay
	for rows.Next() {
		var (
			d     domain.TradingDay
			mkt   string
			open  int
			wkend int
		)
		if err := rows.Scan(&mkt, &d.Date, &open, &wkend, &d.Holiday); err != nil {
			return nil, fmt.Errorf("scanning trading_days: %w", err)
		}
		d.Market = domain.Market(mkt)
		d.Open = open != 0
		d.Weekend = wkend != 0
		out = append(out, d)
	}
	return out, rows.Err()
}
