package strand

import (
	"context"
	"sync/atomic"
)

// StopSource is a cooperative cancellation flag with one-to-many
// callback registration. Combinators armed with a stop source signal
// it on their deciding completion (first failure for [WhenAllStop],
// first success for [WhenAnyStop]); willing participants observe the
// matching [StopToken] and cancel themselves. Nothing is ever
// interrupted: propagation is purely cooperative.
type StopSource struct {
	ctx       context.Context
	cancel    context.CancelFunc
	requested atomic.Bool
}

// NewStopSource creates an un-triggered stop source.
func NewStopSource() *StopSource {
	ctx, cancel := context.WithCancel(context.Background())
	return &StopSource{ctx: ctx, cancel: cancel}
}

// RequestStop triggers the source. It reports whether this call made
// the transition; later calls have no effect and return false.
func (s *StopSource) RequestStop() bool {
	if s.requested.Swap(true) {
		return false
	}
	s.cancel()
	return true
}

// Stopped reports whether stop has been requested.
func (s *StopSource) Stopped() bool {
	return s.requested.Load()
}

// Token returns a token observing this source.
func (s *StopSource) Token() StopToken {
	return StopToken{ctx: s.ctx}
}

// StopToken observes a [StopSource]. The zero token never reports
// stop and registers no callbacks.
type StopToken struct {
	ctx context.Context
}

// TokenOf adapts a context to a StopToken, so context cancellation can
// drive the stop-aware awaitables directly.
func TokenOf(ctx context.Context) StopToken {
	return StopToken{ctx: ctx}
}

// Stopped reports whether the source has been triggered.
func (t StopToken) Stopped() bool {
	return t.ctx != nil && t.ctx.Err() != nil
}

// Done returns a channel closed when stop is requested, or nil for the
// zero token (a nil channel never becomes ready).
func (t StopToken) Done() <-chan struct{} {
	if t.ctx == nil {
		return nil
	}
	return t.ctx.Done()
}

// Register installs fn to run (on its own goroutine) once stop is
// requested; if stop was already requested, fn is started immediately.
// The returned function unregisters fn; it reports false when fn has
// already started running.
func (t StopToken) Register(fn func()) (unregister func() bool) {
	if t.ctx == nil {
		return func() bool { return true }
	}
	stop := context.AfterFunc(t.ctx, fn)
	return stop
}
