package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/zeebo/assume/bench"
	"github.com/zeebo/assume/internal/mon"
)

// Sample is one testing.Benchmark measurement of a variant.
type Sample struct {
	N       int   `json:"n"`
	NsPerOp int64 `json:"ns_per_op"`
}

// Result is everything measured about one variant. An op is one fold over
// the whole domain, which is Calls guarded operations.
type Result struct {
	Name     string      `json:"name"`
	Strategy string      `json:"strategy"`
	Inlining string      `json:"inlining"`
	Fold     uint32      `json:"fold"`
	Digest   uint64      `json:"digest"`
	Calls    int         `json:"calls"`
	Samples  []Sample    `json:"samples"`
	Summary  mon.Summary `json:"summary"`
}

// NsPerCall is the median cost of a single guarded operation.
func (r Result) NsPerCall() float64 {
	if r.Calls == 0 {
		return 0
	}
	return r.Summary.Median / float64(r.Calls)
}

// Report is the output of Run.
type Report struct {
	Env     Env      `json:"env"`
	Lo      uint     `json:"lo"`
	Hi      uint     `json:"hi"`
	Count   int      `json:"count"`
	Seed    uint64   `json:"seed"`
	Results []Result `json:"results"`
}

// Result returns the result with the given name.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// Inversion is a pair of variants where asserting with assume.That measured
// slower than checking in every build.
type Inversion struct {
	Inlining  string
	Unchecked string
	Checked   string
	Ratio     float64
}

// Inversions compares the unchecked and always-checked variants that the
// compiler may inline. The unchecked one does strictly less work, so a median
// more than tolerance above the checked median usually means the assumption
// is not paying off. It is a statistical signal, not an error.
func (r *Report) Inversions(tolerance float64) (out []Inversion) {
	inlining := bench.DefaultInline.String()

	var unchecked, checked *Result
	for i := range r.Results {
		res := &r.Results[i]
		if res.Inlining != inlining {
			continue
		}
		switch res.Strategy {
		case bench.UncheckedHint.String():
			unchecked = res
		case bench.AlwaysCheck.String():
			checked = res
		}
	}
	if unchecked == nil || checked == nil || checked.Summary.Median == 0 {
		return nil
	}

	ratio := unchecked.Summary.Median / checked.Summary.Median
	if ratio > 1+tolerance {
		out = append(out, Inversion{
			Inlining:  inlining,
			Unchecked: unchecked.Name,
			Checked:   checked.Name,
			Ratio:     ratio,
		})
	}
	return out
}

// WriteText writes an aligned table of the results.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "# mode=%s go=%s %s/%s cpu=%q lzcnt=%v fingerprint=%s\n",
		r.Env.Mode, r.Env.GoVersion, r.Env.GOOS, r.Env.GOARCH, r.Env.CPU, r.Env.LZCNT, r.Env.Fingerprint)
	fmt.Fprintf(tw, "# domain=[%d, %d) rounds=%d seed=%d\n", r.Lo, r.Hi, r.Count, r.Seed)
	fmt.Fprintln(tw, "variant\tstrategy\tinlining\tn\tmedian ns/op\tmean ns/op\tstddev\tmin\tmax\tns/call\tfold\t")
	for _, res := range r.Results {
		s := res.Summary
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f\t%.0f\t%.0f\t%d\t%d\t%.3f\t%#x\t\n",
			res.Name, res.Strategy, res.Inlining, s.N,
			s.Median, s.Mean, s.Stddev, s.Min, s.Max,
			res.NsPerCall(), res.Fold)
	}
	return tw.Flush()
}

// WriteGoBench writes every sample in the text format of go test -bench so
// that benchstat can compare reports.
func (r *Report) WriteGoBench(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "goos: %s\ngoarch: %s\npkg: github.com/zeebo/assume/bench\ncpu: %s\nmode: %s\n",
		r.Env.GOOS, r.Env.GOARCH, r.Env.CPU, r.Env.Mode); err != nil {
		return err
	}
	for _, res := range r.Results {
		for _, s := range res.Samples {
			if _, err := fmt.Fprintf(w, "BenchmarkIlog2/%s \t%8d\t%12d ns/op\n", res.Name, s.N, s.NsPerOp); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON. LoadBaseline reads it back.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(r)
}
