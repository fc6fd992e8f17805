// Package bench defines six ways of guarding the same integer logarithm and
// the workload used to compare them.
//
// The variants cross three enforcement strategies with two inlining policies:
//
//	UncheckedHint   assume.That, then the unchecked logarithm
//	DebugOnlyCheck  debug.Assert, then the checked logarithm
//	AlwaysCheck     an unconditional check, then the checked logarithm
//
// Each variant and each fold is written out by hand. Routing them through a
// shared generic loop or a func value would stop the compiler from inlining
// the guarded operation into the loop, which is half of what is measured.
package bench

import (
	"github.com/zeebo/assume"
	"github.com/zeebo/assume/internal/debug"
	"github.com/zeebo/assume/internal/log2"
)

// Strategy is how a variant enforces "x > 0" before taking the logarithm.
type Strategy int

const (
	// UncheckedHint asserts with assume.That and calls the unchecked logarithm.
	UncheckedHint Strategy = iota
	// DebugOnlyCheck asserts with debug.Assert and calls the checked logarithm.
	DebugOnlyCheck
	// AlwaysCheck checks in every build and calls the checked logarithm.
	AlwaysCheck
)

func (s Strategy) String() string {
	switch s {
	case UncheckedHint:
		return "unchecked-hint"
	case DebugOnlyCheck:
		return "debug-only-check"
	case AlwaysCheck:
		return "always-check"
	default:
		return "unknown"
	}
}

// Inlining is whether the guarded operation may be inlined into its fold.
type Inlining int

const (
	// NeverInline marks the guarded operation go:noinline.
	NeverInline Inlining = iota
	// DefaultInline leaves the decision to the compiler.
	DefaultInline
)

func (i Inlining) String() string {
	switch i {
	case NeverInline:
		return "never"
	case DefaultInline:
		return "default"
	default:
		return "unknown"
	}
}

// Variant is one guarded operation and the fold that drives it.
type Variant struct {
	Name     string
	Strategy Strategy
	Inlining Inlining

	// Op is the guarded operation on its own, for checking outputs. Calling
	// it through the func value is never inlined.
	Op func(x uint) uint32

	// Fold XORs Op over every input of the domain in order.
	Fold func(d *Domain) uint32
}

// Sink receives fold results so that no fold is dead code.
var Sink uint32

var variants = []Variant{
	{"ilog2_with_assert_unchecked", UncheckedHint, NeverInline,
		ilog2WithAssertUnchecked, foldWithAssertUnchecked},
	{"ilog2_without_assert_unchecked", DebugOnlyCheck, NeverInline,
		ilog2WithoutAssertUnchecked, foldWithoutAssertUnchecked},
	{"ilog2_with_only_assert", AlwaysCheck, NeverInline,
		ilog2WithOnlyAssert, foldWithOnlyAssert},
	{"ilog2_with_assert_unchecked_inlined", UncheckedHint, DefaultInline,
		ilog2WithAssertUncheckedInlined, foldWithAssertUncheckedInlined},
	{"ilog2_without_assert_unchecked_inlined", DebugOnlyCheck, DefaultInline,
		ilog2WithoutAssertUncheckedInlined, foldWithoutAssertUncheckedInlined},
	{"ilog2_with_only_assert_inlined", AlwaysCheck, DefaultInline,
		ilog2WithOnlyAssertInlined, foldWithOnlyAssertInlined},
}

// Variants returns all six variants in a fixed order.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// Lookup returns the variant with the given name.
func Lookup(name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// require panics with an *assume.Violation if cond is false, regardless of
// build.
func require(cond bool, msg string) {
	if !cond {
		panic(&assume.Violation{Msg: msg})
	}
}

//
// never inlined
//

//go:noinline
func ilog2WithAssertUnchecked(x uint) uint32 {
	assume.That(x > 0, "x must be positive")
	return log2.Log2Unchecked(x)
}

//go:noinline
func ilog2WithoutAssertUnchecked(x uint) uint32 {
	debug.Assert(x > 0, "x must be positive")
	return log2.Log2(x)
}

//go:noinline
func ilog2WithOnlyAssert(x uint) uint32 {
	require(x > 0, "x must be positive")
	return log2.Log2(x)
}

//
// inlinable
//

func ilog2WithAssertUncheckedInlined(x uint) uint32 {
	assume.That(x > 0, "x must be positive")
	return log2.Log2Unchecked(x)
}

func ilog2WithoutAssertUncheckedInlined(x uint) uint32 {
	debug.Assert(x > 0, "x must be positive")
	return log2.Log2(x)
}

func ilog2WithOnlyAssertInlined(x uint) uint32 {
	require(x > 0, "x must be positive")
	return log2.Log2(x)
}

//
// folds
//

func foldWithAssertUnchecked(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithAssertUnchecked(x)
	}
	return xor
}

func foldWithoutAssertUnchecked(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithoutAssertUnchecked(x)
	}
	return xor
}

func foldWithOnlyAssert(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithOnlyAssert(x)
	}
	return xor
}

func foldWithAssertUncheckedInlined(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithAssertUncheckedInlined(x)
	}
	return xor
}

func foldWithoutAssertUncheckedInlined(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithoutAssertUncheckedInlined(x)
	}
	return xor
}

func foldWithOnlyAssertInlined(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= ilog2WithOnlyAssertInlined(x)
	}
	return xor
}
