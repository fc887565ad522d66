// Package crosscheck compares the rule-based calendar against an external
// list of trading days, such as the broker calendar served by Alpaca.
package crosscheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"uscalendar/internal/calendar"
)

// Source lists the dates an external calendar considers open.
type Source interface {
	// Name returns the source identifier.
	Name() string
	// OpenDates returns open dates (YYYY-MM-DD) within [from, to].
	OpenDates(ctx context.Context, from, to time.Time) ([]string, error)
}

// Mismatch is a date on which the rules and the source disagree.
type Mismatch struct {
	Date     string
	Ours     bool     // rules say open
	Theirs   bool     // source says open
	Closures []string // rules that closed the date, if any
}

// Report summarises a comparison run.
type Report struct {
	Source     string
	From       string
	To         string
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether the source agreed on every date.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Compare classifies every date in [from, to] and reports the dates on which
// src disagrees.
func Compare(ctx context.Context, src Source, from, to time.Time, log *slog.Logger) (*Report, error) {
	statuses, err := calendar.Between(from, to)
	if err != nil {
		return nil, err
	}

	dates, err := src.OpenDates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching %s calendar: %w", src.Name(), err)
	}
	theirs := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		theirs[d] = struct{}{}
	}

	report := &Report{
		Source:  src.Name(),
		From:    calendar.FormatDate(from),
		To:      calendar.FormatDate(to),
		Checked: len(statuses),
	}
	for _, st := range statuses {
		date := calendar.FormatDate(st.Date)
		_, open := theirs[date]
		if open == st.Open {
			continue
		}
		m := Mismatch{Date: date, Ours: st.Open, Theirs: open, Closures: st.Closures}
		report.Mismatches = append(report.Mismatches, m)
		log.Warn("calendar mismatch",
			"source", src.Name(), "date", date, "ours", m.Ours, "theirs", m.Theirs, "closures", m.Closures)
	}

	log.Info("cross-check complete",
		"source", src.Name(), "from", report.From, "to", report.To,
		"checked", report.Checked, "mismatches", len(report.Mismatches))
	return report, nil
}
