package store

import (
	"context"
	"fmt"
	"time"

	"uscalendar/internal/calendar"
	"uscalendar/internal/domain"
)

// Export classifies every date in [from, to] and writes the result to each
// store. It returns the number of days written per store.
func Export(ctx context.Context, from, to time.Time, stores ...DayStore) (int, error) {
	statuses, err := calendar.Between(from, to)
	if err != nil {
		return 0, err
	}

	days := make([]domain.TradingDay, len(statuses))
	for i, st := range statuses {
		days[i] = st.TradingDay()
	}

	for _, s := range stores {
		if err := s.WriteDays(ctx, days); err != nil {
			return 0, fmt.Errorf("exporting %s..%s: %w",
				calendar.FormatDate(from), calendar.FormatDate(to), err)
		}
	}
	return len(days), nil
}
