package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ufcstats/internal/config"
	"github.com/pfrederiksen/ufcstats/internal/fetch"
	"github.com/pfrederiksen/ufcstats/internal/logger"
	"github.com/pfrederiksen/ufcstats/internal/metrics"
	"github.com/pfrederiksen/ufcstats/internal/scraper"
	"github.com/pfrederiksen/ufcstats/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is reported by --version.
var Version = "dev"

// SummaryFile is the name, without extension, of the JSON run summary written
// next to the CSV files.
const SummaryFile = "run_summary"

// options holds the flag values that are not part of config.Config.
type options struct {
	format  string
	preview int
	sort    string
	verbose bool
}

// NewRootCmd creates the root command. Flag defaults come from cfg, so values
// from the environment show up in --help and flags override them.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ufcstats",
		Short: "Extract completed UFC events and fight results from ufcstats.com",
		Long: `A CLI tool that walks the ufcstats.com completed-events listing, visits each
event page and writes two CSV files: one row per event and one row per fighter
per fight.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.ListingURL, "listing-url", cfg.ListingURL, "Completed-events listing page")
	f.IntVar(&cfg.MaxEvents, "max-events", cfg.MaxEvents, "Maximum number of events to process (0 = all)")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	f.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header sent with every request")
	f.Float64Var(&cfg.Rate, "rate", cfg.Rate, "Maximum requests per second (0 = unpaced)")
	f.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "Directory for the CSV files")
	f.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write run metrics to this Prometheus textfile (empty = off)")
	f.StringVar(&opts.format, "format", string(FormatText), "Summary format: text or json")
	f.IntVar(&opts.preview, "preview", 10, "Rows of each table shown in the summary")
	f.StringVar(&opts.sort, "sort", string(SortNone), "Order of the event preview: none, date or name")
	f.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// run is the main command logic
func run(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	order := SortOrder(strings.ToLower(opts.sort))
	if order != SortNone && order != SortByDate && order != SortByName {
		return fmt.Errorf("invalid sort order: %s (must be 'none', 'date' or 'name')", opts.sort)
	}
	if opts.preview < 0 {
		return fmt.Errorf("preview must not be negative, got %d", opts.preview)
	}

	if opts.verbose {
		cfg.LogLevel = logger.LevelDebug
	}
	logger.SetDefault(logger.New(cfg.LogLevel, cmd.ErrOrStderr()))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := storage.New(cfg.OutDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Starting run", logger.Fields{
		"listing_url": cfg.ListingURL,
		"max_events":  cfg.MaxEvents,
		"timeout":     cfg.Timeout.String(),
		"rate":        cfg.Rate,
		"out_dir":     store.Dir(),
	})

	started := time.Now().UTC()
	sc := scraper.New(fetch.New(cfg.FetchOptions()), cfg.ScraperOptions())

	ds, runErr := sc.Run(ctx)
	defer writeMetrics(cfg.MetricsFile, &runErr)
	if ds == nil {
		return runErr
	}
	if runErr != nil {
		// cancelled part way; keep what was collected
		logger.Warn("Run interrupted, writing partial results", logger.Fields{
			"events": len(ds.Events()),
			"error":  runErr.Error(),
		})
	}

	checkErr := ds.Check()
	if checkErr != nil {
		logger.Warn("Fight records are inconsistent, exporting anyway", logger.Fields{"error": checkErr.Error()})
	}

	paths, err := store.WriteDataset(ds)
	if err != nil {
		runErr = fmt.Errorf("writing tables: %w", err)
		return runErr
	}

	summary := NewSummary(ds, SummaryOptions{
		ListingURL: cfg.ListingURL,
		StartedAt:  started,
		Duration:   time.Since(started),
		Files:      paths,
		CheckErr:   checkErr,
		Preview:    opts.preview,
		Sort:       order,
		Metrics:    logger.GetMetricsSnapshot(),
	})

	if path, err := store.WriteJSON(SummaryFile, summary); err != nil {
		logger.Error("Failed to save run summary", logger.Fields{"file": SummaryFile}, err)
	} else {
		summary.Files = append(summary.Files, path)
	}

	if err := WriteOutput(cmd.OutOrStdout(), summary, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return runErr
}

// writeMetrics exports the run metrics when a metrics file is configured. A run
// counts as successful when *runErr is nil at the time of the call.
func writeMetrics(path string, runErr *error) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path, logger.GetMetricsSnapshot(), time.Now(), *runErr == nil); err != nil {
		logger.Error("Failed to write metrics file", logger.Fields{"path": path}, err)
		return
	}
	logger.Debug("Saved metrics file", logger.Fields{"path": path})
}

// Execute runs the CLI
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:]))
}

func execute(ctx context.Context, args []string) int {
	// A broken .env is reported but does not stop the run.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	cmd := NewRootCmd(cfg)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return ExitError
	}
	return ExitSuccess
}
