package calendar

import "time"

// Rule reports whether a date is the observed instance of one closure.
type Rule struct {
	Name  string
	Match func(d time.Time) bool
}

// rules is evaluated in order by Classify. The checks are independent so
// the order only affects the order of Status.Closures.
var rules = []Rule{
	{Name: "weekend", Match: isWeekend},
	{Name: "new_years_day", Match: isNewYearsDay},
	{Name: "mlk_day", Match: isMLKDay},
	{Name: "presidents_day", Match: isPresidentsDay},
	{Name: "good_friday", Match: isGoodFriday},
	{Name: "memorial_day", Match: isMemorialDay},
	{Name: "independence_day", Match: isIndependenceDay},
	{Name: "labor_day", Match: isLaborDay},
	{Name: "thanksgiving", Match: isThanksgiving},
	{Name: "christmas", Match: isChristmas},
}

// Rules returns a copy of the closure rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// A Saturday New Year's Day is not observed at all.
func isNewYearsDay(d time.Time) bool {
	return isOn(d, time.January, 1) ||
		(isOn(d, time.January, 2) && d.Weekday() == time.Monday)
}

func isMLKDay(d time.Time) bool {
	return d.Equal(nthWeekday(d.Year(), time.January, time.Monday, 3))
}

func isPresidentsDay(d time.Time) bool {
	return d.Equal(nthWeekday(d.Year(), time.February, time.Monday, 3))
}

func isGoodFriday(d time.Time) bool {
	gf, ok := GoodFriday(d.Year())
	return ok && d.Equal(gf)
}

func isMemorialDay(d time.Time) bool {
	return d.Equal(lastWeekday(d.Year(), time.May, time.Monday))
}

// Only the Sunday shift is observed. A Saturday July 4 leaves Friday July 3
// open.
func isIndependenceDay(d time.Time) bool {
	return isOn(d, time.July, 4) ||
		(isOn(d, time.July, 5) && d.Weekday() == time.Monday)
}

func isLaborDay(d time.Time) bool {
	return d.Equal(nthWeekday(d.Year(), time.September, time.Monday, 1))
}

func isThanksgiving(d time.Time) bool {
	return d.Equal(nthWeekday(d.Year(), time.November, time.Thursday, 4))
}

func isChristmas(d time.Time) bool {
	return isOn(d, time.December, 25) ||
		(isOn(d, time.December, 26) && d.Weekday() == time.Monday) ||
		(isOn(d, time.December, 24) && d.Weekday() == time.Friday)
}

func isOn(d time.Time, month time.Month, day int) bool {
	return d.Month() == month && d.Day() == day
}

// nthWeekday returns the n-th (1-based) occurrence of weekday in month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := Date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// lastWeekday returns the last occurrence of weekday in month by stepping
// back from the first day of the following month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	next := Date(year, month+1, 1)
	back := (int(next.Weekday()) - int(weekday) + 7) % 7
	if back == 0 {
		back = 7
	}
	return next.AddDate(0, 0, -back)
}
