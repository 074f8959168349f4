package strand

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
)

// ErrSignalBusy is returned when a second signal awaiter tries to
// install itself while one is already active. The process-wide handler
// slot holds a single awaiter; concurrent installs fail instead of
// serializing.
var ErrSignalBusy = errors.New("strand: signal awaiter already installed")

// signalSlot guards the process-wide signal handler installation.
var signalSlot atomic.Bool

// WhenSignal returns an awaitable that completes when either token has
// stop requested or the OS delivers sig. The previous signal
// disposition is restored and the handler slot cleared when the await
// returns.
func WhenSignal(token StopToken, sig os.Signal) Awaitable[struct{}] {
	return signalAwaiter{token: token, sig: sig}
}

type signalAwaiter struct {
	token StopToken
	sig   os.Signal
}

func (a signalAwaiter) Ready() bool {
	return a.token.Stopped()
}

func (a signalAwaiter) Await(ctx context.Context) (struct{}, error) {
	if a.token.Stopped() {
		return struct{}{}, nil
	}

	if signalSlot.Swap(true) {
		return struct{}{}, ErrSignalBusy
	}
	defer signalSlot.Store(false)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, a.sig)
	defer signal.Stop(ch)

	select {
	case <-ch:
		return struct{}{}, nil
	case <-a.token.Done():
		return struct{}{}, nil
	case <-ctx.Done():
		return struct{}{}, ctx.Err()
	}
}
