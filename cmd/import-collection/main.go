// import-collection reconciles a legacy collection export against the card
// catalog and appends the matched rows to the collection.
//
// Usage: import-collection --db=<path> --file=<export.csv> --rejects=<out.csv> [--clear] [--since=YYYY-MM-DD] [--until=YYYY-MM-DD]
//
// Rows that cannot be matched are written to the rejects file with an Error
// column; fix them and import the rejects file again.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codyseavey/tcg-tracker/collection/internal/catalog"
	"github.com/codyseavey/tcg-tracker/collection/internal/database"
	"github.com/codyseavey/tcg-tracker/collection/internal/importer"
	"github.com/codyseavey/tcg-tracker/collection/internal/logging"
	"github.com/codyseavey/tcg-tracker/collection/internal/services"
)

type options struct {
	dbPath      string
	file        string
	rejects     string
	clear       bool
	since       string
	until       string
	rulesFile   string
	cacheSize   int
	verbose     bool
	gormLogging string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "import-collection",
		Short: "Import a legacy collection export",
		Long: `Reads a legacy collection CSV, resolves every row to a catalog card and
appends the possessions to the collection. Unresolved rows go to the rejects
file so they can be corrected and imported again.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dbPath, "db", "./tcg_tracker.db", "path to the sqlite database")
	f.StringVar(&opts.file, "file", "", "legacy export CSV to import")
	f.StringVar(&opts.rejects, "rejects", "", "where to write rejected and skipped rows")
	f.BoolVar(&opts.clear, "clear", false, "delete every possession before importing")
	f.StringVar(&opts.since, "since", "", "skip rows last updated before this date")
	f.StringVar(&opts.until, "until", "", "skip rows last updated after this date")
	f.StringVar(&opts.rulesFile, "rules", "", "YAML file extending the built-in reconciliation rules")
	f.IntVar(&opts.cacheSize, "cache-size", catalog.DefaultCacheSize, "per-set card lists kept in memory")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every rejected row")
	f.StringVar(&opts.gormLogging, "gorm-log-level", "warn", "gorm log level (silent, error, warn, info)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("rejects")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	level := "info"
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	since, err := importer.ParseBound(opts.since)
	if err != nil {
		return fmt.Errorf("--since: %w", err)
	}
	until, err := importer.ParseUntilBound(opts.until)
	if err != nil {
		return fmt.Errorf("--until: %w", err)
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return fmt.Errorf("--until %s is before --since %s", opts.until, opts.since)
	}

	rules, err := importer.LoadRules(opts.rulesFile)
	if err != nil {
		return err
	}

	if err := database.Initialize(opts.dbPath, database.ParseLogLevel(opts.gormLogging), logger); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	in, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer in.Close()

	out, err := os.Create(opts.rejects)
	if err != nil {
		return fmt.Errorf("create rejects file: %w", err)
	}
	defer out.Close()

	svc := services.NewImportService(database.GetDB(), rules, nil, opts.cacheSize, logger)

	started := time.Now()
	result, err := svc.ImportWithRejects(cmd.Context(), services.ImportRequest{
		Source: opts.file,
		CSV:    in,
		Clear:  opts.clear,
		Since:  since,
		Until:  until,
	}, out)
	if err != nil {
		logger.Error("import aborted", zap.Error(err))
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Import run %s finished in %s\n", result.ID, time.Since(started).Round(time.Millisecond))
	fmt.Fprintf(w, "  imported:        %d\n", result.Imported)
	fmt.Fprintf(w, "  skipped by date: %d\n", result.SkippedByDate)
	fmt.Fprintf(w, "  rejected:        %d\n", result.Rejected)
	if result.SkippedByDate+result.Rejected > 0 {
		fmt.Fprintf(w, "Rejected and skipped rows written to %s\n", opts.rejects)
	}
	return nil
}
