//go:build !release

package assume

// Trusted is true when That assumes its condition instead of checking it.
const Trusted = false

// Build is the Enforcer for this build. It checks every condition.
type Build struct{}

// Check panics with a *Violation carrying msg if cond is false. It does not
// return in that case.
func (Build) Check(cond bool, msg string) {
	if !cond {
		panic(&Violation{Msg: msg})
	}
}

// Checkf is like Check but formats the message on failure.
func (Build) Checkf(cond bool, format string, args ...any) {
	if !cond {
		violatedf(format, args)
	}
}
