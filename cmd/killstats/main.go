// Command killstats works with boss kill dumps from the command line.
//
// Usage:
//
//	killstats parse dump.txt
//	killstats stats dump.txt --as-of 2025-11-03 --sort totalKills
//	killstats ingest dump.txt other.txt
//	killstats render - < dump.txt
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/killstats/internal/config"
	"github.com/vytor/killstats/internal/db"
	"github.com/vytor/killstats/internal/dump"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/registry"
	"github.com/vytor/killstats/internal/repository/sqlite"
	"github.com/vytor/killstats/internal/services"
	"github.com/vytor/killstats/internal/stats"
	"github.com/vytor/killstats/internal/table"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "killstats",
		Short:         "Boss kill dump tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(parseCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(renderCmd())
	return root
}

// --------------------------------------------------------------------------
// parse command
// --------------------------------------------------------------------------

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the parsed records of a dump as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dump.Parse(text))
		},
	}
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

type statsFlags struct {
	asOf     string
	search   string
	status   string
	sortBy   string
	dir      string
	registry string
	asJSON   bool
}

func statsCmd() *cobra.Command {
	var f statsFlags
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Aggregate a dump offline and print the boss table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runStats(cmd.OutOrStdout(), text, f, time.Now())
		},
	}
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "Reference day YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Case-insensitive boss name filter")
	cmd.Flags().StringVar(&f.status, "status", "all", "all, killed, active, never or expected")
	cmd.Flags().StringVar(&f.sortBy, "sort", "lastKill", "Sort field")
	cmd.Flags().StringVar(&f.dir, "dir", "desc", "asc or desc")
	cmd.Flags().StringVar(&f.registry, "registry", "", "YAML boss registry listing bosses to show without kills")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func runStats(w io.Writer, text string, f statsFlags, now time.Time) error {
	asOf := now
	if f.asOf != "" {
		t, err := time.Parse("2006-01-02", f.asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: %w", f.asOf, err)
		}
		asOf = t
	}
	field, err := table.ParseField(f.sortBy)
	if err != nil {
		return err
	}
	dir, err := table.ParseDirection(f.dir)
	if err != nil {
		return err
	}
	status, err := table.ParseStatus(f.status)
	if err != nil {
		return err
	}

	var names []string
	if f.registry != "" {
		if names, err = registry.Load(f.registry); err != nil {
			return err
		}
	}

	parsed := dump.Parse(text)
	bosses, global, err := stats.Aggregate(parsed.Records, asOf, stats.Options{
		Registry: append(names, parsed.Bosses...),
		World:    parsed.World,
	})
	if err != nil {
		return err
	}
	summary := stats.Summarize(bosses)

	rows := table.Sort(table.FilterStatus(table.Filter(bosses, f.search), status), field, dir)

	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"global":  global,
			"summary": summary,
			"bosses":  rows,
		})
	}
	return writeTable(w, global, summary, rows, len(bosses))
}

// --------------------------------------------------------------------------
// ingest command
// --------------------------------------------------------------------------

func ingestCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "ingest FILE...",
		Short: "Store one or more dumps in the configured database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			log := logger.New(
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
				logger.WithOutput(cmd.ErrOrStderr()),
			)
			logger.SetDefault(log)
			ctx = logger.NewContext(ctx, log)

			database, err := db.Open(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			svc := services.NewIngestService(
				sqlite.NewWorldRepository(database.DB),
				sqlite.NewBossRepository(database.DB),
				sqlite.NewKillRepository(database.DB),
				sqlite.NewUploadRepository(database.DB),
				time.Now,
			)

			for _, path := range args {
				text, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				res, err := svc.Ingest(ctx, text)
				if err != nil {
					return fmt.Errorf("ingest %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: world=%s inserted=%d/%d\n", path, res.World, res.Inserted, res.Total)
				for _, msg := range res.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default DB_PATH)")
	return cmd
}

// --------------------------------------------------------------------------
// render command
// --------------------------------------------------------------------------

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Re-render a dump in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), dump.Render(dump.Parse(text), time.Now()))
			return err
		},
	}
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
