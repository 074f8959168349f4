package strand

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// TaskInfo identifies a nursery child. It is attached to every
// [TaskEvent] and to the [*TaskError] wrapping the child's failure.
type TaskInfo struct {
	ID   uuid.UUID
	Name string
}

// EventKind classifies a [TaskEvent].
type EventKind int

const (
	// EventStarted fires when a child begins executing.
	EventStarted EventKind = iota

	// EventDone fires when a child completes successfully.
	EventDone

	// EventErrored fires when a child returns a non-nil error.
	EventErrored

	// EventPanicked fires when a child panicked; Err holds the
	// captured [*PanicError].
	EventPanicked
)

// TaskEvent describes one child lifecycle transition. Events are
// delivered on the child's goroutine via [WithOnEvent].
type TaskEvent struct {
	Kind     EventKind
	Task     TaskInfo
	Err      error
	Duration time.Duration
}

type config struct {
	logger            *zap.Logger
	sem               *semaphore.Weighted
	onEvent           func(TaskEvent)
	ignoreChildErrors bool
}

// Option configures a [NurseryTask].
type Option func(*config)

func defaultConfig() config {
	return config{
		logger: zap.NewNop(),
	}
}

// WithLogger attaches a structured logger for child lifecycle events.
// The default discards them.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithLimit bounds the number of children executing concurrently.
// Children beyond the limit wait for a slot, or give up when the
// awaiting context is cancelled first.
//
// A limit of zero (the default) means unlimited concurrency.
// WithLimit panics if n is negative.
func WithLimit(n int) Option {
	if n < 0 {
		panic("strand: limit must be non-negative")
	}
	return func(c *config) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithOnEvent registers a hook invoked for every child lifecycle
// event. The hook runs on the child's goroutine and must not panic.
func WithOnEvent(fn func(TaskEvent)) Option {
	return func(c *config) {
		c.onEvent = fn
	}
}

// WithIgnoredChildErrors makes the nursery discard child failures
// instead of surfacing them to the awaiter. Children still run to
// completion and are still joined; only their errors are dropped.
func WithIgnoredChildErrors() Option {
	return func(c *config) {
		c.ignoreChildErrors = true
	}
}
