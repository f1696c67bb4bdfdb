package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/claude/fittracker/internal/client"
	"github.com/claude/fittracker/internal/journal"
	"github.com/claude/fittracker/internal/sensor"
	"github.com/claude/fittracker/internal/workout"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type options struct {
	file       string
	journalDir string
	history    int
	serverURL  string
}

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.file, "file", "", "sensor package file (default: built-in demo packages)")
	flag.StringVar(&opts.journalDir, "journal", os.Getenv("FITTRACKER_JOURNAL_DIR"), "record results in the SQLite journal in this directory")
	flag.IntVar(&opts.history, "history", 0, "print the last N journal entries and exit")
	flag.StringVar(&opts.serverURL, "server", "", "calculate on a FitTracker server instead of locally")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fittracker", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(context.Background(), opts, os.Stdout, log); err != nil {
		log.Error("fittracker failed", "error", err)
		os.Exit(1)
	}
}

// run prints one message per package. The journal, when open, is closed
// before run returns on every path.
func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) error {
	var jr *journal.Journal
	if opts.journalDir != "" {
		var err error
		jr, err = journal.Open(opts.journalDir)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer jr.Close()
	}

	if opts.history > 0 {
		if jr == nil {
			return errors.New("-history requires -journal")
		}
		if err := printHistory(out, jr, opts.history); err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		return nil
	}

	packages := workout.DemoPackages()
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("opening package file: %w", err)
		}
		packages, err = sensor.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", opts.file, err)
		}
	}

	calc := localCalculate
	if opts.serverURL != "" {
		c := client.New(opts.serverURL)
		calc = func(ctx context.Context, code string, data []float64) (workout.InfoMessage, error) {
			return c.Calculate(ctx, code, data)
		}
	}

	for _, p := range packages {
		info, err := calc(ctx, p.Code, p.Data)
		if err != nil {
			return fmt.Errorf("calculating %s %v: %w", p.Code, p.Data, err)
		}
		fmt.Fprintln(out, info.Message())

		if jr != nil {
			if _, err := jr.Record(p.Code, p.Data, info); err != nil {
				log.Warn("failed to record journal entry", "code", p.Code, "error", err)
			}
		}
	}
	return nil
}

func localCalculate(_ context.Context, code string, data []float64) (workout.InfoMessage, error) {
	return workout.Calculate(code, data)
}

func printHistory(out io.Writer, jr *journal.Journal, n int) error {
	entries, err := jr.Recent(n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s %v\n  %s\n", e.RecordedAt.Format(time.DateTime), e.Code, e.Readings, e.Info.Message())
	}
	return nil
}
