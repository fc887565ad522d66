package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"uscalendar/internal/api"
	"uscalendar/internal/calendar"
	"uscalendar/internal/config"
	"uscalendar/internal/crosscheck"
	"uscalendar/internal/store"
	"uscalendar/internal/util"
)

const version = "0.1.0"

// newRootCmd creates the uscal command tree.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "uscal",
		Short: "US stock market trading-day calendar",
		Long: `uscal answers whether the US stock market is open on a date, renders
monthly calendars, exports the calendar to Parquet/SQLite and cross-checks
it against the Alpaca broker calendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path (default $USCALENDAR_CONFIG or config/uscalendar.yaml)")
	rootCmd.PersistentFlags().String("grpc", "", "Ask a calendar-server at this gRPC address instead of evaluating locally")

	loadConfig := func() (*config.Config, error) {
		path := configPath
		if path == "" {
			path = config.Path()
		}
		return config.Load(path)
	}

	rootCmd.AddCommand(
		newOpenCmd(),
		newWeekendCmd(),
		newWeekdayCmd(),
		newNextOpenCmd(),
		newExplainCmd(),
		newMonthCmd(),
		newExportCmd(loadConfig),
		newCheckCmd(loadConfig),
		newGoodFridayCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// ---------------------------------------------------------------------------
// Single-date queries
// ---------------------------------------------------------------------------

func newOpenCmd() *cobra.Command {
	return newPredicateCmd("open", "Print True if the market is open on DATE",
		calendar.IsOpen,
		func(ctx context.Context, c *api.Client, date string) (bool, error) {
			return c.IsOpen(ctx, date)
		})
}

func newWeekendCmd() *cobra.Command {
	return newPredicateCmd("weekend", "Print True if DATE falls on a Saturday or Sunday",
		calendar.IsWeekend,
		func(ctx context.Context, c *api.Client, date string) (bool, error) {
			return c.IsWeekend(ctx, date)
		})
}

func newWeekdayCmd() *cobra.Command {
	return newPredicateCmd("weekday", "Print True if DATE falls Monday through Friday",
		calendar.IsWeekday,
		func(ctx context.Context, c *api.Client, date string) (bool, error) {
			weekend, err := c.IsWeekend(ctx, date)
			return !weekend, err
		})
}

// newPredicateCmd builds a DATE command answered by local, or by remote when
// --grpc is set.
func newPredicateCmd(use, short string, local func(time.Time) bool, remote func(context.Context, *api.Client, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " DATE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var answer bool
			err := withRemote(cmd, func(ctx context.Context, c *api.Client) (err error) {
				answer, err = remote(ctx, c, args[0])
				return err
			}, func() error {
				d, err := calendar.ParseDate(args[0])
				if err != nil {
					return err
				}
				answer = local(d)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calendar.FormatBool(answer))
			return nil
		},
	}
}

func newNextOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-open DATE",
		Short: "Print the first trading day strictly after DATE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var next string
			err := withRemote(cmd, func(ctx context.Context, c *api.Client) (err error) {
				next, err = c.NextOpen(ctx, args[0])
				return err
			}, func() (err error) {
				next, err = calendar.NextOpenAfter(args[0])
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

// withRemote runs remote against the --grpc server when the flag is set and
// local otherwise.
func withRemote(cmd *cobra.Command, remote func(context.Context, *api.Client) error, local func() error) error {
	addr, _ := cmd.Flags().GetString("grpc")
	if addr == "" {
		return local()
	}

	c, err := api.Dial(addr)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := remote(ctx, c); err != nil {
		return fmt.Errorf("querying %s: %w", addr, err)
	}
	return nil
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain DATE",
		Short: "Show which closure rules match DATE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			explain(cmd.OutOrStdout(), calendar.Classify(d))
			return nil
		},
	}
}

func explain(w io.Writer, st calendar.Status) {
	date := calendar.FormatDate(st.Date)
	if st.Open {
		fmt.Fprintf(w, "%s %s: open\n", date, st.Date.Weekday())
	} else {
		fmt.Fprintf(w, "%s %s: closed (%s)\n", date, st.Date.Weekday(), strings.Join(st.Closures, ", "))
	}

	// Unlisted Good Fridays are reported open.
	year := st.Date.Year()
	if _, listed := calendar.GoodFriday(year); !listed && st.Date.Equal(calendar.ComputedGoodFriday(year)) {
		fmt.Fprintf(w, "note: %s is Good Friday, which is only listed for %d-%d\n",
			date, calendar.GoodFridayFirstYear, calendar.GoodFridayLastYear)
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month YYYY-MM",
		Short: "Render a month with closed days highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("parsing month %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMonth(first.Year(), first.Month()))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Range commands
// ---------------------------------------------------------------------------

// dateRange reads --from/--to. Without --from the range starts on Jan 1 of
// the current year; without --to it ends on Dec 31 of from's year.
func dateRange(cmd *cobra.Command) (from, to time.Time, err error) {
	from = calendar.Date(time.Now().Year(), time.January, 1)
	if s, _ := cmd.Flags().GetString("from"); s != "" {
		if from, err = calendar.ParseDate(s); err != nil {
			return from, to, err
		}
	}

	to = calendar.Date(from.Year(), time.December, 31)
	if s, _ := cmd.Flags().GetString("to"); s != "" {
		if to, err = calendar.ParseDate(s); err != nil {
			return from, to, err
		}
	}
	if to.Before(from) {
		return from, to, calendar.ErrInvalidRange
	}
	return from, to, nil
}

func newExportCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the classified calendar to Parquet and/or SQLite",
		Long: `Classify every date in [--from, --to] and write the results to the
configured stores. With neither --parquet nor --sqlite, both are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			wantParquet, _ := cmd.Flags().GetBool("parquet")
			wantSQLite, _ := cmd.Flags().GetBool("sqlite")
			if !wantParquet && !wantSQLite {
				wantParquet, wantSQLite = true, true
			}

			var stores []store.DayStore
			if wantParquet {
				stores = append(stores, store.NewParquetStore(cfg.Storage.DataDir))
			}
			if wantSQLite {
				s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
				if err != nil {
					return err
				}
				defer s.Close()
				stores = append(stores, s)
			}

			n, err := store.Export(cmd.Context(), from, to, stores...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d days (%s to %s) to %d store(s)\n",
				n, calendar.FormatDate(from), calendar.FormatDate(to), len(stores))
			return nil
		},
	}
	cmd.Flags().String("from", "", "First date, YYYY-MM-DD (default Jan 1 of this year)")
	cmd.Flags().String("to", "", "Last date, YYYY-MM-DD (default Dec 31 of the --from year)")
	cmd.Flags().Bool("parquet", false, "Write yearly Parquet files under storage.data_dir")
	cmd.Flags().Bool("sqlite", false, "Write the trading_days table at storage.sqlite_path")
	return cmd
}

func newCheckCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the calendar against the Alpaca broker calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Alpaca.APIKey == "" || cfg.Alpaca.APISecret == "" {
				return fmt.Errorf("alpaca credentials not configured (set APCA_API_KEY_ID and APCA_API_SECRET_KEY)")
			}

			logger := util.NewLogger(cfg.Logging.Level, "text")
			src := crosscheck.NewAlpacaSource(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, cfg.Alpaca.RateLimitPerMin)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			report, err := crosscheck.Compare(ctx, src, from, to, logger)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().String("from", "", "First date, YYYY-MM-DD (default Jan 1 of this year)")
	cmd.Flags().String("to", "", "Last date, YYYY-MM-DD (default Dec 31 of the --from year)")
	return cmd
}

// printReport writes the report and returns an error if there were
// mismatches, so the command exits non-zero.
func printReport(w io.Writer, r *crosscheck.Report) error {
	fmt.Fprintf(w, "%s: checked %d days (%s to %s)\n", r.Source, r.Checked, r.From, r.To)
	if r.OK() {
		fmt.Fprintln(w, "no mismatches")
		return nil
	}
	for _, m := range r.Mismatches {
		reason := ""
		if len(m.Closures) > 0 {
			reason = " [" + strings.Join(m.Closures, ", ") + "]"
		}
		fmt.Fprintf(w, "  %s ours=%s theirs=%s%s\n", m.Date, openClosed(m.Ours), openClosed(m.Theirs), reason)
	}
	return fmt.Errorf("%d mismatches against %s", len(r.Mismatches), r.Source)
}

func newGoodFridayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goodfriday",
		Short: "Print computus-derived Good Friday table rows",
		Long: `Print Good Friday for each year in [--from, --to] in the form used by the
calendar's Good Friday table. Years already listed are marked so the
computed value can be compared with the listed one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetInt("from")
			to, _ := cmd.Flags().GetInt("to")
			if to < from {
				return calendar.ErrInvalidRange
			}
			printGoodFridays(cmd.OutOrStdout(), from, to)
			return nil
		},
	}
	cmd.Flags().Int("from", calendar.GoodFridayLastYear+1, "First year")
	cmd.Flags().Int("to", calendar.GoodFridayLastYear+10, "Last year")
	return cmd
}

func printGoodFridays(w io.Writer, from, to int) {
	for year := from; year <= to; year++ {
		d := calendar.ComputedGoodFriday(year)
		line := fmt.Sprintf("\t%d: Date(%d, time.%s, %d),", year, year, d.Month(), d.Day())
		if listed, ok := calendar.GoodFriday(year); ok {
			if listed.Equal(d) {
				line += " // listed"
			} else {
				line += " // listed as " + calendar.FormatDate(listed)
			}
		}
		fmt.Fprintln(w, line)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uscal %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Good Friday listed %d-%d\n",
				calendar.GoodFridayFirstYear, calendar.GoodFridayLastYear)
		},
	}
}

func openClosed(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
