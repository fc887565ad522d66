// Package calendar decides whether a date is a US stock-market trading day.
//
// A date is closed when any closure rule matches it: weekends, New Year's
// Day, Martin Luther King Jr. Day, Presidents Day, Good Friday, Memorial
// Day, Independence Day, Labor Day, Thanksgiving and Christmas, with the
// exchange's weekend observance shifts. All functions are pure and safe for
// concurrent use.
package calendar

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // exchange zone without a system zoneinfo

	"uscalendar/internal/domain"
)

var (
	// ErrInvalidRange is returned when a range ends before it starts.
	ErrInvalidRange = errors.New("calendar: range end before start")

	// ErrUnsupportedMarket is returned for markets without closure rules.
	ErrUnsupportedMarket = errors.New("calendar: unsupported market")
)

// Status is the classification of a single date.
type Status struct {
	Date     time.Time
	Open     bool
	Weekend  bool
	Closures []string // names of matching rules, in rule order
}

// Holiday returns the first non-weekend closure, or "" if there is none.
func (s Status) Holiday() string {
	for _, name := range s.Closures {
		if name != "weekend" {
			return name
		}
	}
	return ""
}

// TradingDay converts s into its persisted form.
func (s Status) TradingDay() domain.TradingDay {
	return domain.TradingDay{
		Market:  domain.MarketUS,
		Date:    FormatDate(s.Date),
		Open:    s.Open,
		Weekend: s.Weekend,
		Holiday: s.Holiday(),
	}
}

// Classify runs every closure rule against d.
func Classify(d time.Time) Status {
	d = civil(d)
	st := Status{Date: d, Open: true}
	for _, r := range rules {
		if r.Match(d) {
			st.Open = false
			st.Closures = append(st.Closures, r.Name)
		}
	}
	st.Weekend = isWeekend(d)
	return st
}

// IsOpen reports whether the market is open on d.
func IsOpen(d time.Time) bool {
	d = civil(d)
	for _, r := range rules {
		if r.Match(d) {
			return false
		}
	}
	return true
}

// IsWeekend reports whether d is a Saturday or Sunday. Holidays are not
// considered.
func IsWeekend(d time.Time) bool {
	return isWeekend(civil(d))
}

// IsWeekday is the negation of IsWeekend.
func IsWeekday(d time.Time) bool {
	return !IsWeekend(d)
}

// NextOpenDate returns the first open date strictly after d.
func NextOpenDate(d time.Time) time.Time {
	next := civil(d).AddDate(0, 0, 1)
	for !IsOpen(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Between classifies every date in [from, to].
func Between(from, to time.Time) ([]Status, error) {
	from, to = civil(from), civil(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%s..%s: %w", FormatDate(from), FormatDate(to), ErrInvalidRange)
	}

	out := make([]Status, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, Classify(d))
	}
	return out, nil
}

// OpenDays returns the open dates in [from, to].
func OpenDays(from, to time.Time) ([]time.Time, error) {
	days, err := Between(from, to)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, st := range days {
		if st.Open {
			out = append(out, st.Date)
		}
	}
	return out, nil
}

// IsOpenOn parses a YYYY-MM-DD date and reports whether the market is open.
func IsOpenOn(date string) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	return IsOpen(d), nil
}

// NextOpenAfter parses a YYYY-MM-DD date and returns the next open date in
// the same form.
func NextOpenAfter(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(NextOpenDate(d)), nil
}

// ---------------------------------------------------------------------------
// TradingCalendar: instant-based queries in the exchange time zone
// ---------------------------------------------------------------------------

// TradingCalendar answers open/closed questions for instants by first
// converting them to the exchange-local date.
type TradingCalendar struct {
	market domain.Market
	loc    *time.Location
}

// NewTradingCalendar creates a TradingCalendar for the given market.
func NewTradingCalendar(market domain.Market) (*TradingCalendar, error) {
	if market != domain.MarketUS {
		return nil, fmt.Errorf("%q: %w", market, ErrUnsupportedMarket)
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading ET timezone: %w", err)
	}
	return &TradingCalendar{market: market, loc: loc}, nil
}

// Market returns the calendar's market.
func (tc *TradingCalendar) Market() domain.Market { return tc.market }

// Location returns the exchange time zone.
func (tc *TradingCalendar) Location() *time.Location { return tc.loc }

// Today returns the exchange-local civil date of t.
func (tc *TradingCalendar) Today(t time.Time) time.Time {
	return civil(t.In(tc.loc))
}

// IsMarketOpen reports whether t falls on a trading day in exchange-local
// time. Session hours are not considered.
func (tc *TradingCalendar) IsMarketOpen(t time.Time) bool {
	return IsOpen(tc.Today(t))
}

// NextOpen returns the first trading day strictly after t's exchange-local
// date.
func (tc *TradingCalendar) NextOpen(t time.Time) time.Time {
	return NextOpenDate(tc.Today(t))
}
