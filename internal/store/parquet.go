package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"uscalendar/internal/domain"
)

// Compile-time interface check.
var _ DayStore = (*ParquetStore)(nil)

// ParquetStore implements DayStore using one Parquet file per market and
// year:
//
//	<DataDir>/<market>/calendar/<YYYY>.parquet
type ParquetStore struct {
	DataDir string
}

// NewParquetStore creates a new ParquetStore rooted at the given data directory.
func NewParquetStore(dataDir string) *ParquetStore {
	return &ParquetStore{DataDir: dataDir}
}

// DayRecord is the Parquet schema for a classified day.
type DayRecord struct {
	Market  string `parquet:"market"`
	Date    string `parquet:"date"` // YYYY-MM-DD
	Open    bool   `parquet:"open"`
	Weekend bool   `parquet:"weekend"`
	Holiday string `parquet:"holiday"`
}

// WriteDays merges days into the yearly files, replacing existing records
// with the same date.
func (s *ParquetStore) WriteDays(_ context.Context, days []domain.TradingDay) error {
	type key struct {
		market domain.Market
		year   int
	}
	groups := make(map[key][]DayRecord)
	for _, d := range days {
		year, err := yearOf(d.Date)
		if err != nil {
			return err
		}
		k := key{market: d.Market, year: year}
		groups[k] = append(groups[k], DayRecord{
			Market:  string(d.Market),
			Date:    d.Date,
			Open:    d.Open,
			Weekend: d.Weekend,
			Holiday: d.Holiday,
		})
	}

	for k, records := range groups {
		path := s.yearPath(k.market, k.year)

		existing, err := readParquetFile[DayRecord](path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		merged := mergeDayRecords(existing, records)

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing days for %s/%d: %w", k.market, k.year, err)
		}
	}
	return nil
}

// ReadDays reads the yearly files overlapping [from, to].
func (s *ParquetStore) ReadDays(_ context.Context, market domain.Market, from, to string) ([]domain.TradingDay, error) {
	fromYear, err := yearOf(from)
	if err != nil {
		return nil, err
	}
	toYear, err := yearOf(to)
	if err != nil {
		return nil, err
	}

	var out []domain.TradingDay
	for year := fromYear; year <= toYear; year++ {
		records, err := readParquetFile[DayRecord](s.yearPath(market, year))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s/%d: %w", market, year, err)
		}
		for _, r := range records {
			if r.Date < from || r.Date > to {
				continue
			}
			out = append(out, domain.TradingDay{
				Market:  domain.Market(r.Market),
				Date:    r.Date,
				Open:    r.Open,
				Weekend: r.Weekend,
				Holiday: r.Holiday,
			})
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *ParquetStore) yearPath(market domain.Market, year int) string {
	return filepath.Join(s.DataDir, string(market), "calendar", strconv.Itoa(year)+".parquet")
}

func yearOf(date string) (int, error) {
	if len(date) < 4 {
		return 0, fmt.Errorf("invalid date %q", date)
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return year, nil
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return parquet.ReadFile[T](path)
}

// mergeDayRecords deduplicates records by date, preferring incoming ones,
// and sorts the result by date.
func mergeDayRecords(existing, incoming []DayRecord) []DayRecord {
	seen := make(map[string]DayRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.Date] = r
	}
	for _, r := range incoming {
		seen[r.Date] = r
	}

	merged := make([]DayRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}
