package crosscheck

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"uscalendar/internal/util"
)

// Compile-time interface check.
var _ Source = (*AlpacaSource)(nil)

// AlpacaSource reads open dates from the Alpaca trading calendar API.
// Requests are split per calendar year, throttled and retried.
type AlpacaSource struct {
	client   *alpaca.Client
	limiter  *util.RateLimiter
	attempts int
	backoff  time.Duration
}

// NewAlpacaSource creates an AlpacaSource for the given credentials.
func NewAlpacaSource(apiKey, apiSecret, baseURL string, ratePerMin int) *AlpacaSource {
	return &AlpacaSource{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		limiter:  util.NewRateLimiter(ratePerMin),
		attempts: 3,
		backoff:  time.Second,
	}
}

// Name returns the source identifier.
func (s *AlpacaSource) Name() string { return "alpaca" }

// OpenDates returns the dates Alpaca lists as trading days within [from, to].
func (s *AlpacaSource) OpenDates(ctx context.Context, from, to time.Time) ([]string, error) {
	var out []string
	for _, r := range splitYears(from, to) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req := alpaca.GetCalendarRequest{Start: r[0], End: r[1]}
		days, err := util.Retry(ctx, s.attempts, s.backoff, func(context.Context) ([]alpaca.CalendarDay, error) {
			return s.client.GetCalendar(req)
		})
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			out = append(out, d.Date)
		}
	}
	return out, nil
}

// splitYears cuts [from, to] into per-year [start, end] pairs.
func splitYears(from, to time.Time) [][2]time.Time {
	var out [][2]time.Time
	for start := from; !start.After(to); {
		end := time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, start.Location())
		if end.After(to) {
			end = to
		}
		out = append(out, [2]time.Time{start, end})
		start = end.AddDate(0, 0, 1)
	}
	return out
}
