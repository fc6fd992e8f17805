package harness

import "github.com/zeebo/errs"

// errPinUnsupported is returned by pinned when the platform cannot pin.
var errPinUnsupported = errs.Class("cpu pinning unsupported")
