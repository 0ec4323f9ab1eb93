// Command trip-features computes per-trip driving-behaviour features from
// raw telematics samples.
//
// Usage:
//
//	trip-features -params params.json -input samples.csv -output features.csv
//	trip-features -params params.json -db trips.db -table raw -store
//	trip-features -db trips.db migrate up
//	trip-features -db trips.db -input samples.csv -table raw import
//	trip-features -db trips.db runs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/banshee-data/trip.features/internal/config"
	"github.com/banshee-data/trip.features/internal/db"
	"github.com/banshee-data/trip.features/internal/features"
	"github.com/banshee-data/trip.features/internal/monitoring"
	"github.com/banshee-data/trip.features/internal/params"
	"github.com/banshee-data/trip.features/internal/report"
	"github.com/banshee-data/trip.features/internal/telematics"
	"github.com/banshee-data/trip.features/internal/version"
)

// errUsage reports a command line that cannot run; usage has been printed.
var errUsage = errors.New("invalid usage")

type options struct {
	input      string
	dbPath     string
	table      string
	paramsPath string
	configPath string
	output     string
	store      bool
	reportPath string
	plotPath   string
	workers    int
	quiet      bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("trip-features: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var o options
	fs := flag.NewFlagSet("trip-features", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "input", "", "raw samples CSV file (- for stdin)")
	fs.StringVar(&o.dbPath, "db", "", "path to sqlite db (source table and feature store)")
	fs.StringVar(&o.table, "table", "", "raw samples table in -db")
	fs.StringVar(&o.paramsPath, "params", "", "trained parameter bundle (.json)")
	fs.StringVar(&o.configPath, "config", "", "feature config (.json); defaults apply when empty")
	fs.StringVar(&o.output, "output", "-", "feature CSV output file (- for stdout, empty to skip)")
	fs.BoolVar(&o.store, "store", false, "persist the feature run to -db")
	fs.StringVar(&o.reportPath, "report", "", "write an HTML report to this file")
	fs.StringVar(&o.plotPath, "plot", "", "write a window-count histogram (.png) to this file")
	fs.IntVar(&o.workers, "workers", 0, "concurrent trips per feature family (0 keeps the config value)")
	fs.BoolVar(&o.quiet, "quiet", false, "suppress progress logging")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if o.version {
		fmt.Fprintf(stdout, "trip-features %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return nil
	}
	if o.quiet {
		prev := monitoring.Logf
		monitoring.SetLogger(nil)
		defer monitoring.SetLogger(prev)
	}

	if fs.NArg() > 0 {
		rest := fs.Args()[1:]
		switch cmd := fs.Arg(0); cmd {
		case "migrate":
			if o.dbPath == "" {
				return fmt.Errorf("migrate requires -db")
			}
			return db.RunMigrateCommand(rest, o.dbPath, stdout)
		case "import":
			return runImport(ctx, o)
		case "runs":
			return runList(ctx, o, stdout)
		case "help":
			printUsage(fs)
			return nil
		default:
			fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
			printUsage(fs)
			return errUsage
		}
	}
	return runExtract(ctx, o, stdout)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(fs.Output(), `trip-features - per-trip driving behaviour features

Usage: trip-features [flags] [command]

Commands:
  (none)    compute features from -input or -db/-table
  import    load -input CSV into -db/-table
  runs      list feature runs stored in -db
  migrate   manage the -db schema (up, down, to <version>, status)
  help      show this help

Flags:
`)
	fs.PrintDefaults()
}

func loadConfig(o options) (*config.FeatureConfig, error) {
	cfg := config.DefaultFeatureConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadFeatureConfig(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.workers > 0 {
		cfg.Workers = &o.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readInput(ctx context.Context, o options, store *db.DB) (telematics.Input, error) {
	switch {
	case o.input == "-":
		return telematics.ReadCSV(os.Stdin)
	case o.input != "":
		f, err := os.Open(filepath.Clean(o.input))
		if err != nil {
			return telematics.Input{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		return telematics.ReadCSV(f)
	case store != nil && o.table != "":
		return store.LoadSamples(ctx, o.table)
	default:
		return telematics.Input{}, fmt.Errorf("no input: set -input or -db and -table")
	}
}

func runExtract(ctx context.Context, o options, stdout io.Writer) error {
	if o.paramsPath == "" {
		return fmt.Errorf("-params is required")
	}
	if o.store && o.dbPath == "" {
		return fmt.Errorf("-store requires -db")
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	bundle, err := params.LoadBundle(o.paramsPath)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}

	var store *db.DB
	if o.dbPath != "" && (o.store || (o.input == "" && o.table != "")) {
		if store, err = db.NewDB(o.dbPath); err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer store.Close()
	}

	in, err := readInput(ctx, o, store)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := features.New(bundle, cfg)
	if !o.quiet {
		p.Progress = monitoring.LogProgress("trip-features")
	}
	start := time.Now()
	m, err := p.Run(in)
	if err != nil {
		return err
	}
	monitoring.Logf("[trip-features] %d trips in %s", len(m.Rows), time.Since(start).Round(time.Millisecond))

	if err := writeOutputs(o, m, stdout); err != nil {
		return err
	}
	if o.store {
		run, err := store.SaveRun(ctx, m, db.Run{ParamsPath: o.paramsPath})
		if err != nil {
			return err
		}
		monitoring.Logf("[trip-features] stored run %s (%d trips, %d columns)", run.RunID, run.TripCount, run.ColumnCount)
	}
	return nil
}

func writeOutputs(o options, m *features.Matrix, stdout io.Writer) error {
	switch o.output {
	case "":
	case "-":
		if err := features.WriteCSV(stdout, m); err != nil {
			return err
		}
	default:
		if err := writeFile(o.output, func(w io.Writer) error { return features.WriteCSV(w, m) }); err != nil {
			return err
		}
	}
	if o.reportPath != "" {
		title := fmt.Sprintf("Trip features (%d trips)", len(m.Rows))
		if err := writeFile(o.reportPath, func(w io.Writer) error { return report.WriteHTML(w, m, title) }); err != nil {
			return err
		}
	}
	if o.plotPath != "" {
		if err := report.SaveWindowHistogram(m, o.plotPath); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runImport(ctx context.Context, o options) error {
	if o.dbPath == "" || o.table == "" || o.input == "" {
		return fmt.Errorf("import requires -input, -db and -table")
	}
	store, err := db.NewDB(o.dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	in, err := readInput(ctx, o, nil)
	if err != nil {
		return err
	}
	if err := store.ImportSamples(ctx, o.table, in.Samples); err != nil {
		return err
	}
	monitoring.Logf("[trip-features] imported %d samples into %s", len(in.Samples), o.table)
	return nil
}

func runList(ctx context.Context, o options, stdout io.Writer) error {
	if o.dbPath == "" {
		return fmt.Errorf("runs requires -db")
	}
	store, err := db.NewDB(o.dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tTRIPS\tCOLUMNS\tPARAMS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.RunID, r.Created().UTC().Format(time.RFC3339), r.TripCount, r.ColumnCount, r.ParamsPath)
	}
	return tw.Flush()
}
