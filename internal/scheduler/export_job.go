package scheduler

import (
	"context"
	"log/slog"
	"time"

	"uscalendar/internal/calendar"
	"uscalendar/internal/store"
)

// ExportJob rewrites the stored calendar for the current year and the
// configured number of following years.
type ExportJob struct {
	cal        *calendar.TradingCalendar
	stores     []store.DayStore
	yearsAhead int
	now        func() time.Time
	log        *slog.Logger
}

// NewExportJob creates an ExportJob writing to stores.
func NewExportJob(cal *calendar.TradingCalendar, yearsAhead int, log *slog.Logger, stores ...store.DayStore) *ExportJob {
	if yearsAhead < 0 {
		yearsAhead = 0
	}
	return &ExportJob{
		cal:        cal,
		stores:     stores,
		yearsAhead: yearsAhead,
		now:        time.Now,
		log:        log,
	}
}

// Name returns the job identifier.
func (j *ExportJob) Name() string { return "calendar-export" }

// Range returns the inclusive date range the next run will export.
func (j *ExportJob) Range() (from, to time.Time) {
	year := j.cal.Today(j.now()).Year()
	return calendar.Date(year, time.January, 1), calendar.Date(year+j.yearsAhead, time.December, 31)
}

// Run exports the range to every store.
func (j *ExportJob) Run(ctx context.Context) error {
	from, to := j.Range()
	n, err := store.Export(ctx, from, to, j.stores...)
	if err != nil {
		return err
	}
	if to.Year() > calendar.GoodFridayLastYear {
		j.log.Warn("export extends past the Good Friday table",
			"last_listed_year", calendar.GoodFridayLastYear, "to", calendar.FormatDate(to))
	}
	j.log.Info("calendar exported",
		"from", calendar.FormatDate(from), "to", calendar.FormatDate(to), "days", n, "stores", len(j.stores))
	return nil
}
