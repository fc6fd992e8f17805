//go:build !linux

package harness

// pinned reports that pinning is unsupported; Run then measures unpinned.
func pinned(cpu int, fn func() error) error {
	return errPinUnsupported.New("only linux is supported")
}
