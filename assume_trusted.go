//go:build release

package assume

// Trusted is true when That assumes its condition instead of checking it.
const Trusted = true

// Build is the Enforcer for this build. It never evaluates the consequences
// of a false condition: callers that go on to rely on it get unspecified
// behavior.
type Build struct{}

// Check does nothing. The call is inlined and the condition, having no
// other uses, is removed with it.
func (Build) Check(cond bool, msg string) {}

// Checkf does nothing.
func (Build) Checkf(cond bool, format string, args ...any) {}
