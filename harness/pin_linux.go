//go:build linux

package harness

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// pinned runs fn with every thread of the process restricted to cpu, then
// restores each thread's previous mask. testing.Benchmark measures on its own
// goroutine, so pinning only the calling thread would not be enough. Threads
// the runtime starts while fn runs inherit the pinned mask from the thread that
// creates them; on the way out they get the mask the calling thread had.
func pinned(cpu int, fn func() error) (err error) {
	tids, err := threads()
	if err != nil {
		return err
	}

	var orig unix.CPUSet
	if err := unix.SchedGetaffinity(0, &orig); err != nil {
		return Error.New("failed to load cpu mask: %v", err)
	}

	var set unix.CPUSet
	set.Set(cpu)

	old := make(map[int]unix.CPUSet, len(tids))
	defer func() {
		if rerr := restore(old, orig); rerr != nil && err == nil {
			err = rerr
		}
	}()

	for _, tid := range tids {
		var mask unix.CPUSet
		if err := unix.SchedGetaffinity(tid, &mask); err == unix.ESRCH {
			continue
		} else if err != nil {
			return Error.New("failed to load cpu mask: %v", err)
		}
		if err := unix.SchedSetaffinity(tid, &set); err == unix.ESRCH {
			continue
		} else if err != nil {
			return Error.New("failed to pin to cpu %d: %v", cpu, err)
		}
		old[tid] = mask
	}

	return fn()
}

// restore gives every current thread the mask recorded for it in old, or orig
// if it was started after old was taken.
func restore(old map[int]unix.CPUSet, orig unix.CPUSet) error {
	tids, err := threads()
	if err != nil {
		return err
	}
	for _, tid := range tids {
		mask, ok := old[tid]
		if !ok {
			mask = orig
		}
		if err := unix.SchedSetaffinity(tid, &mask); err != nil && err != unix.ESRCH {
			return Error.New("failed to restore cpu mask: %v", err)
		}
	}
	return nil
}

// threads lists the thread ids of the process.
func threads() ([]int, error) {
	ents, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return nil, errPinUnsupported.Wrap(err)
	}
	tids := make([]int, 0, len(ents))
	for _, ent := range ents {
		tid, err := strconv.Atoi(ent.Name())
		if err != nil {
			continue
		}
		tids = append(tids, tid)
	}
	return tids, nil
}
