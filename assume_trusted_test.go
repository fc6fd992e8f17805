//go:build release

package assume_test

import (
	"testing"

	"github.com/zeebo/assume"
)

func TestThatNeverReports(t *testing.T) {
	// no call here relies on the condition, so passing false is harmless:
	// the only thing under test is that nothing is checked.
	assume.That(false, "unchecked")
	assume.Thatf(false, "unchecked %d", 1)
	assume.Build{}.Check(false, "unchecked")
}
