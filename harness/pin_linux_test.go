//go:build linux

package harness

import (
	"runtime"
	"testing"

	"github.com/zeebo/assert"
	"golang.org/x/sys/unix"
)

func TestPinnedRestoresNewThreads(t *testing.T) {
	var orig unix.CPUSet
	assert.NoError(t, unix.SchedGetaffinity(0, &orig))

	cpu := -1
	for i := 0; i < 1024; i++ {
		if orig.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		t.Skip("no cpu in the affinity mask")
	}

	// goroutines locked to their threads and blocked keep those threads busy,
	// so the runtime has to start new ones while pinned.
	release := make(chan struct{})
	defer close(release)

	err := pinned(cpu, func() error {
		started := make(chan struct{})
		for i := 0; i < 4; i++ {
			go func() {
				runtime.LockOSThread()
				started <- struct{}{}
				<-release
			}()
		}
		for i := 0; i < 4; i++ {
			<-started
		}
		return nil
	})
	if err != nil {
		// containers may forbid changing affinity
		t.Skip("pinning not permitted:", err)
	}

	tids, err := threads()
	assert.NoError(t, err)
	for _, tid := range tids {
		var mask unix.CPUSet
		err := unix.SchedGetaffinity(tid, &mask)
		if err == unix.ESRCH {
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, mask, orig)
	}
}
