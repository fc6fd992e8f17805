// Package log2 computes integer base 2 logarithms. It is the payload the
// variants in package bench guard: Log2 checks its own domain, and
// Log2Unchecked is what a caller may use once it has established that
// domain itself.
package log2

import (
	"math/bits"

	"github.com/zeebo/assume"
)

// errZero is prebuilt so that Log2 stays cheap enough to inline.
var errZero = &assume.Violation{Msg: "argument of integer logarithm must be positive"}

// Log2 returns floor(log2(x)). It panics with a PreconditionViolated error if
// x is zero.
func Log2(x uint) uint32 {
	if x == 0 {
		panic(errZero)
	}
	return Log2Unchecked(x)
}

// Log2Unchecked returns floor(log2(x)) for positive x. The result for zero is
// unspecified.
func Log2Unchecked(x uint) uint32 {
	return uint32(bits.Len(x)) - 1
}

// Reference returns floor(log2(x)) by repeated shifting. It is slow and exists
// to check the other functions against. It panics like Log2 when x is zero.
func Reference(x uint) (n uint32) {
	if x == 0 {
		panic(errZero)
	}
	for x > 1 {
		x >>= 1
		n++
	}
	return n
}
