//go:build !release

package assume_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/assume"
)

// violation runs fn and returns the error it panicked with, or nil.
func violation(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		var ok bool
		err, ok = rec.(error)
		if !ok {
			t.Fatalf("panicked with non-error %T: %v", rec, rec)
		}
	}()
	fn()
	return nil
}

func TestThatViolated(t *testing.T) {
	returned := false
	err := violation(t, func() {
		assume.That(false, "x must be positive")
		returned = true
	})

	assert.Error(t, err)
	assert.That(t, assume.PreconditionViolated.Has(err))
	assert.That(t, strings.Contains(err.Error(), "x must be positive"))
	assert.That(t, !returned)

	var v *assume.Violation
	assert.That(t, errors.As(err, &v))
	assert.Equal(t, v.Msg, "x must be positive")
}

func TestThatfViolated(t *testing.T) {
	err := violation(t, func() { assume.Thatf(false, "x must be positive, got %d", 0) })

	assert.That(t, assume.PreconditionViolated.Has(err))
	assert.That(t, strings.Contains(err.Error(), "x must be positive, got 0"))
}

func TestEnforcerViolated(t *testing.T) {
	var e assume.Enforcer = assume.Build{}
	err := violation(t, func() { e.Check(1 > 2, "ordering") })
	assert.That(t, assume.PreconditionViolated.Has(err))
}

func TestThatCrashesProcess(t *testing.T) {
	if os.Getenv("ASSUME_CRASH") == "1" {
		var x uint
		assume.That(x > 0, "x must be positive")
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestThatCrashesProcess$")
	cmd.Env = append(os.Environ(), "ASSUME_CRASH=1")
	out, err := cmd.CombinedOutput()

	var exit *exec.ExitError
	assert.That(t, errors.As(err, &exit))
	assert.Equal(t, exit.ExitCode(), 2)
	assert.That(t, bytes.Contains(out, []byte("precondition violated: x must be positive")))
}
