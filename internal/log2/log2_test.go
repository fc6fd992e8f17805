package log2

import (
	"math"
	"math/bits"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/assume"
	"golang.org/x/exp/rand"
)

func TestLog2(t *testing.T) {
	t.Run("Boundary", func(t *testing.T) {
		assert.Equal(t, Log2(1), uint32(0))
		assert.Equal(t, Log2(2), uint32(1))
		assert.Equal(t, Log2(3), uint32(1))
		assert.Equal(t, Log2(4), uint32(2))
		assert.Equal(t, Log2(9999), uint32(13))
		assert.Equal(t, Log2(math.MaxUint), uint32(bits.UintSize-1))
	})

	t.Run("Powers", func(t *testing.T) {
		for i := 0; i < bits.UintSize; i++ {
			x := uint(1) << uint(i)
			assert.Equal(t, Log2(x), uint32(i))
			assert.Equal(t, Reference(x), uint32(i))
			if x > 1 {
				assert.Equal(t, Log2(x-1), uint32(i-1))
			}
		}
	})

	t.Run("Random", func(t *testing.T) {
		rng := rand.New(rand.NewSource(uint64(1234)))
		for i := 0; i < 100000; i++ {
			x := uint(rng.Uint64())
			if x == 0 {
				continue
			}
			want := Reference(x)
			assert.Equal(t, Log2(x), want)
			assert.Equal(t, Log2Unchecked(x), want)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		for _, fn := range []func(uint) uint32{Log2, Reference} {
			var rec interface{}
			func() {
				defer func() { rec = recover() }()
				fn(0)
			}()
			err, ok := rec.(error)
			assert.That(t, ok)
			assert.That(t, assume.PreconditionViolated.Has(err))
		}
	})
}

func FuzzLog2(f *testing.F) {
	f.Add(uint64(1))
	f.Add(uint64(9999))
	f.Add(uint64(math.MaxUint64))

	f.Fuzz(func(t *testing.T, v uint64) {
		x := uint(v)
		if x == 0 {
			return
		}
		if got, want := Log2(x), Reference(x); got != want {
			t.Fatalf("Log2(%d) = %d, want %d", x, got, want)
		}
	})
}

var blackholeUint32 uint32

func BenchmarkLog2(b *testing.B) {
	b.Run("Checked", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			blackholeUint32 += Log2(uint(i) | 1)
		}
	})

	b.Run("Unchecked", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			blackholeUint32 += Log2Unchecked(uint(i) | 1)
		}
	})
}
