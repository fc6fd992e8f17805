package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// LoadBaseline reads a report written by WriteJSON.
func LoadBaseline(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, Error.New("invalid baseline %q: %v", path, err)
	}
	return &rep, nil
}

// Delta is the change in median cost of one variant between two reports.
type Delta struct {
	Name    string
	Base    float64
	Current float64
	Change  float64 // (Current - Base) / Base
}

// Compare returns the change for every variant present in both reports.
// Reports measured in different environments are refused unless
// allowForeign is set.
func Compare(base, cur *Report, allowForeign bool) ([]Delta, error) {
	if base.Env.Fingerprint != cur.Env.Fingerprint && !allowForeign {
		return nil, Error.New("baseline measured in a different environment: %s (%s) vs %s (%s)",
			base.Env.Fingerprint, base.Env.Mode, cur.Env.Fingerprint, cur.Env.Mode)
	}
	if base.Lo != cur.Lo || base.Hi != cur.Hi {
		return nil, Error.New("baseline domain [%d, %d) differs from [%d, %d)",
			base.Lo, base.Hi, cur.Lo, cur.Hi)
	}

	var out []Delta
	for _, res := range cur.Results {
		old, ok := base.Result(res.Name)
		if !ok || old.Summary.Median == 0 {
			continue
		}
		out = append(out, Delta{
			Name:    res.Name,
			Base:    old.Summary.Median,
			Current: res.Summary.Median,
			Change:  (res.Summary.Median - old.Summary.Median) / old.Summary.Median,
		})
	}
	return out, nil
}

// WriteDeltas writes an aligned table of deltas.
func WriteDeltas(w io.Writer, deltas []Delta) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "variant\tbase ns/op\tcurrent ns/op\tdelta\t")
	for _, d := range deltas {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%+.2f%%\t\n", d.Name, d.Base, d.Current, d.Change*100)
	}
	return tw.Flush()
}
