// Command assume-bench measures the six guarded logarithm variants and
// reports how much each enforcement strategy costs. Build it twice to compare
// modes:
//
//	go build -o verified ./cmd/assume-bench
//	go build -tags release -o trusted ./cmd/assume-bench
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeebo/errs"

	"github.com/zeebo/assume"
	"github.com/zeebo/assume/bench"
	"github.com/zeebo/assume/harness"
	"github.com/zeebo/assume/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parse(args, stderr)
	if err == flag.ErrHelp {
		return 0
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := measure(ctx, cfg, stdout, logger); err != nil {
		logger.Error("benchmark failed", "error", err)
		return 1
	}
	return 0
}

// parse combines flags over the config file over the defaults. Only flags
// that were set on the command line take part.
func parse(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("assume-bench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		path      = fs.String("config", "", "YAML config file")
		benchtime = fs.String("benchtime", "", "time or iterations per measurement, e.g. 1s or 1000x")
		count     = fs.Int("count", 0, "number of shuffled rounds")
		seed      = fs.Uint64("seed", 0, "seed for the round order, positive (default 1)")
		pattern   = fs.String("run", "", "regular expression selecting variants")
		format    = fs.String("format", "", "output format: text, gobench or json")
		output    = fs.String("o", "", "write the report to this file instead of stdout")
		baseline  = fs.String("baseline", "", "JSON report to compare against")
		foreign   = fs.Bool("allow-foreign-baseline", false, "compare against a baseline from another environment")
		cpu       = fs.Int("pin", -1, "pin the process to this CPU while measuring")
		tolerance = fs.Float64("tolerance", 0, "allowed slowdown of the unchecked variant before warning")
		verbose   = fs.Bool("v", false, "log every measurement")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, config.Error.New("unexpected arguments: %v", fs.Args())
	}

	var file config.Config
	if *path != "" {
		var err error
		if file, err = config.Load(*path); err != nil {
			return config.Config{}, err
		}
	}

	var flags config.Config
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "benchtime":
			d, n, err := config.ParseBenchTime(*benchtime)
			ferr = errs.Combine(ferr, err)
			flags.Harness.BenchTime, flags.Harness.Iterations = d, n
			if n > 0 {
				// an explicit count also overrides a duration from the file.
				file.Harness.BenchTime = 0
			} else {
				file.Harness.Iterations = 0
			}
		case "count":
			flags.Harness.Count = *count
		case "seed":
			if *seed == 0 {
				// zero means unset everywhere else and would silently become 1.
				ferr = errs.Combine(ferr, config.Error.New("seed must be positive"))
			}
			flags.Harness.Seed = *seed
		case "run":
			flags.Run = *pattern
		case "format":
			flags.Format = *format
		case "o":
			flags.Output = *output
		case "baseline":
			flags.Baseline = *baseline
		case "allow-foreign-baseline":
			flags.AllowForeignBaseline = *foreign
		case "pin":
			flags.Harness.Pin, flags.Harness.CPU = *cpu >= 0, *cpu
		case "tolerance":
			flags.Harness.Tolerance = *tolerance
		case "v":
			if *verbose {
				flags.LogLevel = "debug"
			}
		}
	})
	if ferr != nil {
		return config.Config{}, ferr
	}

	cfg := flags.CombineWith(file).CombineWith(config.DefaultConfig)
	return cfg, cfg.Validate()
}

func measure(ctx context.Context, cfg config.Config, stdout io.Writer, logger *slog.Logger) (err error) {
	variants, err := cfg.Select()
	if err != nil {
		return err
	}
	domain, err := bench.NewDomain(cfg.Lo, cfg.Hi)
	if err != nil {
		return err
	}

	logger.Info("measuring",
		"mode", assume.Mode(),
		"variants", len(variants),
		"lo", cfg.Lo,
		"hi", cfg.Hi,
		"count", cfg.Harness.Count)

	rep, err := harness.Run(ctx, cfg.Harness, variants, domain, logger)
	if err != nil {
		return err
	}

	out := stdout
	if cfg.Output != "" {
		fh, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return errs.Wrap(cerr)
		}
		defer func() { err = errs.Combine(err, fh.Close()) }()
		out = fh
	}

	switch cfg.Format {
	case "json":
		err = rep.WriteJSON(out)
	case "gobench":
		err = rep.WriteGoBench(out)
	default:
		err = rep.WriteText(out)
	}
	if err != nil {
		return errs.Wrap(err)
	}

	if cfg.Baseline == "" {
		return nil
	}
	base, err := harness.LoadBaseline(cfg.Baseline)
	if err != nil {
		return err
	}
	deltas, err := harness.Compare(base, rep, cfg.AllowForeignBaseline)
	if err != nil {
		return err
	}
	return harness.WriteDeltas(stdout, deltas)
}
