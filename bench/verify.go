package bench

import (
	"testing"

	"github.com/zeebo/errs"

	"github.com/zeebo/assume/internal/log2"
)

// Verify checks that every variant computes the reference logarithm for every
// input of the domain, and that its fold and ordered digest match the
// reference. Measurements of variants that disagree compare different work,
// so callers should not measure when Verify fails.
func Verify(d *Domain, vs []Variant) error {
	wantFold := Reference(d)
	wantDigest := Digest(d, log2.Reference)

	var group errs.Group
	for _, v := range vs {
		for _, x := range d.inputs {
			if got, want := v.Op(x), log2.Reference(x); got != want {
				group.Add(Error.New("%s: op(%d) = %d, want %d", v.Name, x, got, want))
				break
			}
		}
		if got := v.Fold(d); got != wantFold {
			group.Add(Error.New("%s: fold = %#x, want %#x", v.Name, got, wantFold))
		}
		if got := Digest(d, v.Op); got != wantDigest {
			group.Add(Error.New("%s: digest = %#x, want %#x", v.Name, got, wantDigest))
		}
	}
	return group.Err()
}

// Bench returns a benchmark function that folds the domain b.N times.
func (v Variant) Bench(d *Domain) func(b *testing.B) {
	fold := v.Fold
	return func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			Sink = fold(d)
		}
	}
}
