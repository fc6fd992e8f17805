// Package pcg is a small deterministic generator used to order benchmark
// runs. It is not for anything that needs real randomness.
package pcg

import (
	"math/bits"
)

// T is a pcg generator. The zero value is invalid.
type T struct {
	State uint64
	Inc   uint64
}

const mul = 6364136223846793005

// New constructs a pcg with the given state and inc.
func New(state, inc uint64) T {
	// equivalent to starting from a zero state with the odd inc, stepping,
	// adding state, and stepping again.
	inc = inc<<1 | 1
	return T{
		State: (inc+state)*mul + inc,
		Inc:   inc,
	}
}

// Uint32 returns a random uint32.
func (p *T) Uint32() uint32 {
	oldstate := p.State
	p.State = oldstate*mul + p.Inc

	// NOTE: the reference output permutation is a right rotate. any rotate
	// works for the compression step and left is what the compiler emits
	// cheaply.
	xorshift := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	return bits.RotateLeft32(xorshift, int(oldstate>>59))
}

// Intn returns an int uniformly in [0, n). n must be positive and fit in
// 32 bits.
func (p *T) Intn(n int) int {
	return int((uint64(p.Uint32()) * uint64(n)) >> 32)
}

// Shuffle pseudo-randomizes the order of n elements with a Fisher-Yates
// pass, calling swap to exchange elements i and j.
func (p *T) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, p.Intn(i+1))
	}
}

// Perm returns a pseudo-random permutation of [0, n).
func (p *T) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	p.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
