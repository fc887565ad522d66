package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"uscalendar/internal/calendar"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	headerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))

	openStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	weekendStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	holidayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	gridStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)
)

const cellWidth = 4

// renderMonth draws a Sunday-first grid for the month with open days, weekends
// and holidays styled differently, followed by a list of the holidays.
func renderMonth(year int, month time.Month) string {
	first := calendar.Date(year, month, 1)
	days := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		b.WriteString(headerStyle.Width(cellWidth).Render(wd.String()[:2]))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", cellWidth*int(first.Weekday())))
	var holidays []calendar.Status
	for day := 1; day <= days; day++ {
		st := calendar.Classify(calendar.Date(year, month, day))
		style := openStyle
		switch {
		case st.Weekend:
			style = weekendStyle
		case !st.Open:
			style = holidayStyle
			holidays = append(holidays, st)
		}
		b.WriteString(style.Width(cellWidth).Render(fmt.Sprintf("%2d", day)))
		if st.Date.Weekday() == time.Saturday && day != days {
			b.WriteString("\n")
		}
	}

	out := gridStyle.Render(b.String())
	if len(holidays) == 0 {
		return out
	}

	var legend strings.Builder
	for _, st := range holidays {
		fmt.Fprintf(&legend, "\n%s  %s", holidayStyle.Render(st.Date.Format("Jan 02")), st.Holiday())
	}
	return out + legend.String()
}
