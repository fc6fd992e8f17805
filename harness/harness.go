// Package harness measures the variants in package bench with the testing
// package's benchmark runner and summarizes the results.
package harness

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/zeebo/errs"

	"github.com/zeebo/assume/bench"
	"github.com/zeebo/assume/internal/mon"
	"github.com/zeebo/assume/internal/pcg"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("harness")

// Run verifies that the variants agree on the domain and then measures each
// of them cfg.Count times, shuffling the order of every round. Variants run
// one after another on a single goroutine. A nil logger discards.
func Run(ctx context.Context, cfg Config, variants []bench.Variant, d *bench.Domain, log *slog.Logger) (*Report, error) {
	cfg = cfg.CombineWith(DefaultConfig)
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if len(variants) == 0 {
		return nil, Error.New("no variants selected")
	}
	if cfg.Count > mon.Capacity {
		return nil, Error.New("count %d exceeds the %d retained samples", cfg.Count, mon.Capacity)
	}
	if err := bench.Verify(d, variants); err != nil {
		return nil, Error.Wrap(err)
	}
	restore, err := setBenchTime(cfg.benchTime())
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer restore()

	var (
		hists   = make([]mon.Histogram, len(variants))
		samples = make([][]Sample, len(variants))
		rng     = pcg.New(cfg.Seed, 0)
	)

	measure := func() error {
		for round := 0; round < cfg.Count; round++ {
			for _, idx := range rng.Perm(len(variants)) {
				if err := ctx.Err(); err != nil {
					return err
				}

				v := variants[idx]
				res := testing.Benchmark(v.Bench(d))
				if res.N == 0 {
					return Error.New("%s: benchmark did not run", v.Name)
				}

				nsop := res.NsPerOp()
				hists[idx].Observe(time.Duration(nsop))
				samples[idx] = append(samples[idx], Sample{N: res.N, NsPerOp: nsop})

				log.Debug("measured",
					"variant", v.Name,
					"round", round,
					"n", res.N,
					"ns/op", nsop)
			}
		}
		return nil
	}

	if cfg.Pin {
		err = pinned(cfg.CPU, measure)
		if errPinUnsupported.Has(err) {
			log.Warn("cpu pinning unavailable, measuring unpinned", "error", err)
			err = measure()
		}
	} else {
		err = measure()
	}
	if err != nil {
		return nil, Error.Wrap(err)
	}

	rep := &Report{
		Env:   CurrentEnv(),
		Lo:    d.Lo(),
		Hi:    d.Hi(),
		Count: cfg.Count,
		Seed:  cfg.Seed,
	}
	for i, v := range variants {
		rep.Results = append(rep.Results, Result{
			Name:     v.Name,
			Strategy: v.Strategy.String(),
			Inlining: v.Inlining.String(),
			Fold:     v.Fold(d),
			Digest:   bench.Digest(d, v.Op),
			Calls:    d.Len(),
			Samples:  samples[i],
			Summary:  hists[i].Summary(),
		})
	}

	for _, inv := range rep.Inversions(cfg.Tolerance) {
		log.Warn("unchecked variant slower than checked variant",
			"inlining", inv.Inlining,
			"unchecked", inv.Unchecked,
			"checked", inv.Checked,
			"ratio", inv.Ratio)
	}

	return rep, nil
}

var initTesting bool

// setBenchTime points testing.Benchmark at the given duration or count and
// returns a func that puts back the previous value. The testing flags only
// exist after testing.Init, which go test has already called when running
// under it.
func setBenchTime(value string) (restore func(), err error) {
	if flag.Lookup("test.benchtime") == nil && !initTesting {
		testing.Init()
		initTesting = true
	}
	f := flag.Lookup("test.benchtime")
	if f == nil {
		return nil, Error.New("testing flags are not registered")
	}

	old := f.Value.String()
	if err := flag.Set("test.benchtime", value); err != nil {
		return nil, err
	}
	return func() { _ = flag.Set("test.benchtime", old) }, nil
}
