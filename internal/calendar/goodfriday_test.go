package calendar

import (
	"testing"
	"time"
)

func TestGoodFridayTableMatchesComputus(t *testing.T) {
	for year := GoodFridayFirstYear; year <= GoodFridayLastYear; year++ {
		listed, ok := GoodFriday(year)
		if !ok {
			t.Errorf("GoodFriday(%d) missing from table", year)
			continue
		}
		if computed := ComputedGoodFriday(year); !listed.Equal(computed) {
			t.Errorf("GoodFriday(%d) = %s, computus gives %s", year, FormatDate(listed), FormatDate(computed))
		}
		if listed.Weekday() != time.Friday {
			t.Errorf("GoodFriday(%d) falls on %v", year, listed.Weekday())
		}
	}
}

func TestGoodFridayOutsideTable(t *testing.T) {
	for _, year := range []int{2019, 2020, 2031, 2035} {
		if _, ok := GoodFriday(year); ok {
			t.Errorf("GoodFriday(%d) should not be listed", year)
		}
	}

	// Known gap: 2035-03-23 is Good Friday but the table stops at 2030.
	gf := Date(2035, time.March, 23)
	if !ComputedGoodFriday(2035).Equal(gf) {
		t.Fatalf("ComputedGoodFriday(2035) = %s, want %s", FormatDate(ComputedGoodFriday(2035)), FormatDate(gf))
	}
	if !IsOpen(gf) {
		t.Error("Good Friday outside the table should report open")
	}
}

func TestEaster(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2000, Date(2000, 4, 23)},
		{2019, Date(2019, 4, 21)},
		{2024, Date(2024, 3, 31)},
		{2025, Date(2025, 4, 20)},
		{2038, Date(2038, 4, 25)},
	}

	for _, tt := range tests {
		t.Run(FormatDate(tt.want), func(t *testing.T) {
			got := Easter(tt.year)
			if !got.Equal(tt.want) {
				t.Errorf("Easter(%d) = %s, want %s", tt.year, FormatDate(got), FormatDate(tt.want))
			}
			if got.Weekday() != time.Sunday {
				t.Errorf("Easter should be on Sunday, got %v", got.Weekday())
			}
		})
	}
}
