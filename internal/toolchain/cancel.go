package toolchain

import "sync/atomic"

// CancelToken is the shared cancellation flag for one run. It transitions
// from false to true exactly once and is never reset; a fresh token is
// created per run. Components poll it at suspension points: between one
// download chunk and the next, and between one archive entry and the next.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns a fresh, unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the flag. Safe to call more than once.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether a stop has been requested.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}
