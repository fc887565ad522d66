// Package httpapi serves the trading-day calendar over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"uscalendar/internal/calendar"
	"uscalendar/internal/domain"
)

// MaxRangeDays bounds GET /api/market/days.
const MaxRangeDays = 3660

// Server serves the calendar HTTP API.
type Server struct {
	cal *calendar.TradingCalendar
	log *slog.Logger
	now func() time.Time
}

// NewServer creates a new calendar HTTP server.
func NewServer(cal *calendar.TradingCalendar, log *slog.Logger) *Server {
	return &Server{
		cal: cal,
		log: log.With("component", "httpapi"),
		now: time.Now,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/market/status/{date}", s.handleStatus)
	mux.HandleFunc("GET /api/market/open/{date}", s.handleOpen)
	mux.HandleFunc("GET /api/market/weekend/{date}", s.handleWeekend)
	mux.HandleFunc("GET /api/market/next-open/{date}", s.handleNextOpen)
	mux.HandleFunc("GET /api/market/days", s.handleDays)
}

// Handler returns an http.Handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.logRequests(corsMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// pathDate parses the {date} path value, writing a 400 on failure.
func pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	d, err := calendar.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return d, true
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	today := s.cal.Today(s.now())
	writeJSON(w, HealthResponse{
		Status:             "ok",
		Today:              calendar.FormatDate(today),
		Open:               calendar.IsOpen(today),
		GoodFridayLastYear: calendar.GoodFridayLastYear,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	writeJSON(w, calendar.Classify(d).TradingDay())
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	writeJSON(w, OpenResponse{Date: calendar.FormatDate(d), Open: calendar.IsOpen(d)})
}

func (s *Server) handleWeekend(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	writeJSON(w, WeekendResponse{Date: calendar.FormatDate(d), Weekend: calendar.IsWeekend(d)})
}

func (s *Server) handleNextOpen(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	writeJSON(w, NextOpenResponse{
		Date:     calendar.FormatDate(d),
		NextOpen: calendar.FormatDate(calendar.NextOpenDate(d)),
	})
}

// handleDays returns every classified day in ?from=..&to=.. (inclusive).
// ?open=true keeps only trading days.
func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := calendar.ParseDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := calendar.ParseDate(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxRangeDays {
		writeError(w, http.StatusBadRequest, "range exceeds maximum number of days")
		return
	}

	statuses, err := calendar.Between(from, to)
	if errors.Is(err, calendar.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("classifying range", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	onlyOpen := q.Get("open") == "true"
	out := make([]domain.TradingDay, 0, len(statuses))
	for _, st := range statuses {
		if onlyOpen && !st.Open {
			continue
		}
		out = append(out, st.TradingDay())
	}
	writeJSON(w, out)
}
