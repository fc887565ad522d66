// Package store persists classified trading days so downstream jobs can read
// a precomputed calendar instead of linking the rules.
package store

import (
	"context"

	"uscalendar/internal/domain"
)

// DayStore persists and retrieves classified trading days.
type DayStore interface {
	// WriteDays inserts or replaces a batch of days, keyed by (market, date).
	WriteDays(ctx context.Context, days []domain.TradingDay) error

	// ReadDays returns the stored days for market within [from, to], both
	// YYYY-MM-DD, ordered by date.
	ReadDays(ctx context.Context, market domain.Market, from, to string) ([]domain.TradingDay, error)
}
