package strand

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrSingleEvent is the base of every [SingleEvent] domain error.
var ErrSingleEvent = errors.New("strand: single event")

var (
	// ErrSenderAttached is returned when a second sender is requested
	// from an event that already handed one out.
	ErrSenderAttached = fmt.Errorf("%w: sender already attached", ErrSingleEvent)

	// ErrSenderConsumed is returned when a sender is used after it
	// already delivered an outcome or was dropped.
	ErrSenderConsumed = fmt.Errorf("%w: sender already consumed", ErrSingleEvent)

	// ErrNoSender is surfaced to the awaiter when the sender was
	// dropped without ever delivering a value, or never existed.
	ErrNoSender = fmt.Errorf("%w: no sender", ErrSingleEvent)
)

// Event state bits. The whole synchronization state of a SingleEvent
// is these three independently-set flags in one atomic word.
const (
	evHasSender  uint32 = 1 << iota // a sender handle exists (or delivered)
	evHasValue                      // the outcome slot is filled
	evHasAwaiter                    // a consumer is suspended
)

// SingleEvent is a one-shot typed rendezvous between exactly one
// [Sender] and at most one awaiter. The awaiter observes the delivered
// value, the delivered error, or [ErrNoSender] when the sender was
// dropped (or never attached); no interleaving produces a torn state.
//
// The outcome slot itself is not atomic: only the sender writes it,
// and the awaiter reads it only after observing the value flag, which
// the flag word's read-modify-writes order.
type SingleEvent[T any] struct {
	state atomic.Uint32
	val   T
	err   error
	wake  chan struct{}
}

// NewSingleEvent creates an empty event.
func NewSingleEvent[T any]() *SingleEvent[T] {
	return &SingleEvent[T]{wake: make(chan struct{})}
}

// Sender hands out the event's single send entitlement. A second call
// fails with [ErrSenderAttached].
func (e *SingleEvent[T]) Sender() (*Sender[T], error) {
	if old := e.fetchOr(evHasSender); old&evHasSender != 0 {
		return nil, ErrSenderAttached
	}
	s := &Sender[T]{}
	s.ev.Store(e)
	return s, nil
}

// Ready reports whether awaiting would not block: an outcome is
// present, or no sender exists so nothing will ever arrive.
func (e *SingleEvent[T]) Ready() bool {
	return eventReady(e.state.Load())
}

// Await suspends until the outcome is available and returns it.
// At most one goroutine may await a SingleEvent.
func (e *SingleEvent[T]) Await(ctx context.Context) (T, error) {
	var zero T

	if st := e.state.Load(); !eventReady(st) {
		// Publish the awaiter, then re-check the pre-state: if the
		// outcome arrived in between, the sender never saw the
		// awaiter bit and will not wake anyone.
		pre := e.fetchOr(evHasAwaiter)
		if !eventReady(pre) {
			select {
			case <-e.wake:
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}

	st := e.state.Load()
	if st&evHasSender == 0 && st&evHasValue == 0 {
		return zero, ErrNoSender
	}
	if e.err != nil {
		return zero, e.err
	}
	return e.val, nil
}

func eventReady(state uint32) bool {
	return state&evHasValue != 0 || state&evHasSender == 0
}

func (e *SingleEvent[T]) deposit(v T, err error) {
	e.val = v
	e.err = err
	if old := e.fetchOr(evHasValue); old&evHasAwaiter != 0 {
		close(e.wake)
	}
}

func (e *SingleEvent[T]) releaseSender() {
	old := e.fetchAnd(^evHasSender)
	if old&evHasValue != 0 {
		return
	}
	if old&evHasAwaiter != 0 {
		// The awaiter is suspended and nothing will ever arrive.
		var zero T
		e.deposit(zero, ErrNoSender)
	}
}

func (e *SingleEvent[T]) fetchOr(bits uint32) uint32 {
	for {
		old := e.state.Load()
		if e.state.CompareAndSwap(old, old|bits) {
			return old
		}
	}
}

func (e *SingleEvent[T]) fetchAnd(mask uint32) uint32 {
	for {
		old := e.state.Load()
		if e.state.CompareAndSwap(old, old&mask) {
			return old
		}
	}
}

// Sender is the producing side of a [SingleEvent]. It carries a single
// entitlement: one SetValue or SetError consumes it; Drop releases it
// unused, surfacing [ErrNoSender] to a suspended awaiter. Passing the
// *Sender around transfers the entitlement with it.
type Sender[T any] struct {
	ev atomic.Pointer[SingleEvent[T]]
}

// SetValue delivers v and consumes the sender. A consumed sender
// returns [ErrSenderConsumed].
func (s *Sender[T]) SetValue(v T) error {
	ev := s.ev.Swap(nil)
	if ev == nil {
		return ErrSenderConsumed
	}
	ev.deposit(v, nil)
	return nil
}

// SetError delivers err and consumes the sender.
func (s *Sender[T]) SetError(err error) error {
	if err == nil {
		panic("strand: Sender.SetError requires a non-nil error")
	}
	ev := s.ev.Swap(nil)
	if ev == nil {
		return ErrSenderConsumed
	}
	var zero T
	ev.deposit(zero, err)
	return nil
}

// Drop releases the sender without delivering anything. If an awaiter
// is suspended and no outcome was ever delivered, it is resumed with
// [ErrNoSender]. Drop is idempotent and a no-op after SetValue or
// SetError.
func (s *Sender[T]) Drop() {
	if ev := s.ev.Swap(nil); ev != nil {
		ev.releaseSender()
	}
}
