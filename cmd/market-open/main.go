// Command market-open prints True if the US stock market is open on the
// given date and False otherwise.
//
// Usage:
//
//	market-open 2024-11-28
package main

import (
	"fmt"
	"io"
	"os"

	"uscalendar/internal/calendar"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run prints the answer for args[0] with no trailing newline. It returns 2
// on a wrong argument count and 1 on a malformed date.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(stderr, "Usage: market-open YYYY-MM-DD\n")
		return 2
	}

	open, err := calendar.IsOpenOn(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "market-open: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, calendar.FormatBool(open))
	return 0
}
