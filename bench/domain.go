package bench

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/errs"

	"github.com/zeebo/assume/internal/log2"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("bench")

// The default domain is [DefaultLo, DefaultHi).
const (
	DefaultLo = 1
	DefaultHi = 10000
)

// Domain is the sequence of inputs a fold walks, in increasing order.
//
// Inputs are read out of a slice that is filled in at run time rather than
// generated by the loop counter. The compiler cannot see through the loads,
// so it can neither fold the whole workload into a constant nor specialize a
// variant on a known input range.
type Domain struct {
	lo, hi uint
	inputs []uint
}

// NewDomain returns the domain [lo, hi). Every input must satisfy the
// precondition of the guarded operation, so lo must be positive.
func NewDomain(lo, hi uint) (*Domain, error) {
	if lo == 0 {
		return nil, Error.New("domain must start above zero")
	}
	if hi <= lo {
		return nil, Error.New("empty domain: [%d, %d)", lo, hi)
	}

	inputs := make([]uint, 0, hi-lo)
	for x := lo; x < hi; x++ {
		inputs = append(inputs, x)
	}
	return &Domain{lo: lo, hi: hi, inputs: inputs}, nil
}

// DefaultDomain returns [1, 10000).
func DefaultDomain() *Domain {
	d, err := NewDomain(DefaultLo, DefaultHi)
	if err != nil {
		panic(err)
	}
	return d
}

// Lo returns the smallest input.
func (d *Domain) Lo() uint { return d.lo }

// Hi returns one past the largest input.
func (d *Domain) Hi() uint { return d.hi }

// Len returns the number of inputs.
func (d *Domain) Len() int { return len(d.inputs) }

// Reference folds the domain with the slow reference logarithm.
func Reference(d *Domain) (xor uint32) {
	for _, x := range d.inputs {
		xor ^= log2.Reference(x)
	}
	return xor
}

// Digest hashes the outputs of op over the domain in input order. Unlike the
// XOR fold it changes when outputs are permuted, so two operations with equal
// digests agree input by input.
func Digest(d *Domain, op func(uint) uint32) uint64 {
	var buf [4]byte
	h := xxhash.New()
	for _, x := range d.inputs {
		binary.LittleEndian.PutUint32(buf[:], op(x))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
