//go:build release

// Package debug holds assertions that only exist in verified builds. Unlike
// assume.That, nothing downstream of Assert may rely on the condition: release
// builds drop the check entirely and keep whatever checks follow it.
package debug

// Enabled is true when Assert checks its condition.
const Enabled = false

// Assert does nothing. The call is inlined and a condition without side
// effects is removed with it.
func Assert(cond bool, info string) {}
