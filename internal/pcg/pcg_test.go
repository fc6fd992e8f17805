package pcg

import (
	"sort"
	"testing"

	"github.com/zeebo/assert"
)

func TestPCG(t *testing.T) {
	pi := New(2345, 2378)
	out := make([]uint32, 10)
	for i := range out {
		out[i] = pi.Uint32()
	}

	// left rotate output
	assert.DeepEqual(t, out, []uint32{
		0xa066bccc,
		0xee77540c,
		0x69020df4,
		0x981fbe29,
		0xb85fc8bf,
		0xb3f67bbc,
		0xb0c96811,
		0xbe14c31a,
		0x38a77bed,
		0x5a330581,
	})
}

func TestIntn(t *testing.T) {
	pi := New(1, 0)
	for i := 0; i < 10000; i++ {
		v := pi.Intn(6)
		assert.That(t, v >= 0 && v < 6)
	}
}

func TestPerm(t *testing.T) {
	t.Run("Permutation", func(t *testing.T) {
		pi := New(42, 0)
		for n := 0; n < 20; n++ {
			perm := pi.Perm(n)
			sort.Ints(perm)
			for i := range perm {
				assert.Equal(t, perm[i], i)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, b := New(7, 0), New(7, 0)
		for i := 0; i < 10; i++ {
			assert.DeepEqual(t, a.Perm(6), b.Perm(6))
		}
	})

	t.Run("Varies", func(t *testing.T) {
		pi := New(7, 0)
		first := pi.Perm(6)
		for i := 0; i < 100; i++ {
			perm := pi.Perm(6)
			for j := range perm {
				if perm[j] != first[j] {
					return
				}
			}
		}
		t.Fatal("100 identical permutations in a row")
	})
}

var blackholeInt int

func BenchmarkShuffle(b *testing.B) {
	pi := New(2345, 2378)
	order := []int{0, 1, 2, 3, 4, 5}

	for i := 0; i < b.N; i++ {
		pi.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		blackholeInt += order[0]
	}
}
