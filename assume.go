// Package assume provides That, a precondition that is checked in ordinary
// builds and assumed in builds with the release tag.
//
// In a verified build (no tag) That panics with a PreconditionViolated error
// when its condition is false. In a trusted build (-tags release) That does
// nothing and compiles away, and callers are expected to act on the condition
// as if it held: skipping checks they would otherwise repeat, indexing without
// guards, and so on.
//
// UNDEFINED BEHAVIOR: calling That with a false condition in a trusted build
// is a bug in the caller, not an error. Nothing reports it. Code after the
// call may return wrong results, skip work, or crash in unrelated places. Only
// assert conditions that the surrounding code has already established.
package assume

import (
	"fmt"

	"github.com/zeebo/errs"
)

// PreconditionViolated is the class of every failure raised by That in a
// verified build. It indicates a programming error in the caller and is never
// recovered by this module.
var PreconditionViolated = errs.Class("precondition violated")

// errViolated is what every Violation unwraps to, so that
// PreconditionViolated.Has reports true for it.
var errViolated = PreconditionViolated.New("")

// Violation is the value a verified build panics with when a condition is
// false. It is built at the failing call site without any calls, which keeps
// Check and its callers within the inlining budget.
type Violation struct {
	Msg string
}

func (v *Violation) Error() string { return "precondition violated: " + v.Msg }

// Unwrap returns an error of class PreconditionViolated.
func (v *Violation) Unwrap() error { return errViolated }

// Enforcer checks or assumes a predicate at a call site. Build is the only
// implementation and which one is compiled depends on the release tag.
type Enforcer interface {
	Check(cond bool, msg string)
}

var _ Enforcer = Build{}

// That enforces cond with the Enforcer selected by the build. See the package
// documentation for what a false cond means in each build.
func That(cond bool, msg string) { Build{}.Check(cond, msg) }

// Thatf is like That but formats the message. The message is only formatted
// when a verified build observes a false cond.
func Thatf(cond bool, format string, args ...any) { Build{}.Checkf(cond, format, args...) }

// Mode returns "trusted" for release builds and "verified" otherwise.
func Mode() string {
	if Trusted {
		return "trusted"
	}
	return "verified"
}

//go:noinline
func violatedf(format string, args []any) {
	panic(&Violation{Msg: fmt.Sprintf(format, args...)})
}
