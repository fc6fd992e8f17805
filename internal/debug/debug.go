//go:build !release

// Package debug holds assertions that only exist in verified builds. Unlike
// assume.That, nothing downstream of Assert may rely on the condition: release
// builds drop the check entirely and keep whatever checks follow it.
package debug

import "github.com/zeebo/assume"

// Enabled is true when Assert checks its condition.
const Enabled = true

// Assert panics with an *assume.Violation carrying info if cond is false.
func Assert(cond bool, info string) {
	if !cond {
		panic(&assume.Violation{Msg: info})
	}
}
