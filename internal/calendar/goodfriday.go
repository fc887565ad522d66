package calendar

import "time"

// Good Friday follows the lunar Easter date, so it is listed rather than
// computed. Years outside [GoodFridayFirstYear, GoodFridayLastYear] never
// match and the market reports open on those Good Fridays.
//
// To extend the table, print computus-derived rows with
//
//	uscal goodfriday --from 2031 --to 2040
//
// and cross-check them against the exchange's published holiday list before
// adding them here.
const (
	GoodFridayFirstYear = 2021
	GoodFridayLastYear  = 2030
)

var goodFridays = map[int]time.Time{
	2021: Date(2021, time.April, 2),
	2022: Date(2022, time.April, 15),
	2023: Date(2023, time.April, 7),
	2024: Date(2024, time.March, 29),
	2025: Date(2025, time.April, 18),
	2026: Date(2026, time.April, 3),
	2027: Date(2027, time.March, 26),
	2028: Date(2028, time.April, 14),
	2029: Date(2029, time.March, 30),
	2030: Date(2030, time.April, 19),
}

// GoodFriday returns the listed Good Friday for year. ok is false when the
// year is outside the table.
func GoodFriday(year int) (d time.Time, ok bool) {
	d, ok = goodFridays[year]
	return d, ok
}

// Easter returns Western Easter Sunday for year using the anonymous
// Gregorian computus. It is not consulted by the closure rules.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date(year, time.Month(month), day)
}

// ComputedGoodFriday returns the Friday before Easter for year.
func ComputedGoodFriday(year int) time.Time {
	return Easter(year).AddDate(0, 0, -2)
}
