package strand

import (
	"context"
	"sync/atomic"
)

// waiterNode is one suspended acquirer in the mutex's intrusive stack.
// next is meaningful only between enqueue and resumption: it holds the
// head value observed when the node was pushed.
type waiterNode struct {
	next *waiterNode
	cont Continuation
	wake chan struct{}
}

// lockedNoWaiters is the reserved head value for "locked, empty
// queue". nil means unlocked; any other value is the head of the
// waiter stack.
var lockedNoWaiters = &waiterNode{}

// Mutex is an asynchronous mutual-exclusion lock. Acquirers that find
// it busy suspend on a lock-free intrusive queue instead of blocking a
// thread inside the lock word; the holder hands the lock off to a
// waiter on unlock.
//
// The queue is LIFO in the head word and approximates FIFO through the
// hand-off chain. Fairness is not guaranteed.
//
// Acquire through [WhenLocked]; release through [UniqueLock.Unlock].
type Mutex struct {
	head atomic.Pointer[waiterNode]
}

// tryLock pushes cur unless the mutex is free. It returns the head
// value observed at the push: nil means the caller acquired the lock
// immediately; anything else means the caller is queued and must
// suspend. After a contended push the node may be popped and resumed
// at any moment, so callers use the returned copy, never cur.next.
func (m *Mutex) tryLock(cur *waiterNode) *waiterNode {
	for {
		observed := m.head.Load()
		cur.next = observed
		target := cur
		if observed == nil {
			target = lockedNoWaiters
		}
		if m.head.CompareAndSwap(observed, target) {
			return observed
		}
	}
}

// tryUnlock detaches the current waiter stack. If the queue is empty
// the mutex becomes free and lockedNoWaiters is returned; otherwise
// the stack head is returned and the word is reset to "locked, empty";
// the detached chain travels with the resumed waiters from here on.
// Unlocking an unlocked mutex is a programmer error.
func (m *Mutex) tryUnlock() *waiterNode {
	for {
		last := m.head.Load()
		if last == nil {
			panic("strand: unlock of unlocked Mutex")
		}
		target := lockedNoWaiters
		if last == lockedNoWaiters {
			target = nil
		}
		if m.head.CompareAndSwap(last, target) {
			return last
		}
	}
}

// WhenLocked returns an awaitable that acquires m and resolves to the
// held [UniqueLock]. The successor is resumed inline on unlock.
func WhenLocked(m *Mutex) Awaitable[*UniqueLock] {
	return lockAwaiter{m: m, sched: InlineScheduler{}}
}

// WhenLockedOn is [WhenLocked] with an explicit scheduler deciding
// where the hand-off resumes the next holder.
func WhenLockedOn(m *Mutex, sched Scheduler) Awaitable[*UniqueLock] {
	if sched == nil {
		sched = InlineScheduler{}
	}
	return lockAwaiter{m: m, sched: sched}
}

type lockAwaiter struct {
	m     *Mutex
	sched Scheduler
}

func (a lockAwaiter) Await(ctx context.Context) (*UniqueLock, error) {
	node := &waiterNode{wake: make(chan struct{}, 1)}
	node.cont = func() { node.wake <- struct{}{} }

	observed := a.m.tryLock(node)
	if observed != nil {
		// Queued; suspend until a holder hands the lock over. The
		// node cannot be withdrawn from the queue, so the wait is
		// not cancellable.
		<-node.wake
	}
	return &UniqueLock{m: a.m, next: observed, sched: a.sched}, nil
}

// UniqueLock represents lock ownership. Unlock releases exactly once;
// further calls are no-ops, so `defer lk.Unlock()` composes with an
// early hand-off.
type UniqueLock struct {
	m     *Mutex
	next  *waiterNode
	sched Scheduler
}

// Unlock releases the mutex or hands it directly to the next waiter.
//
// Fast path: a holder that observed a queued successor at its own
// enqueue carries that successor in next and schedules it without
// touching the lock word, so the detached chain keeps flowing through
// the successive UniqueLocks. Slow path: detach the current stack via
// tryUnlock and resume its head, if any.
func (l *UniqueLock) Unlock() {
	if l.m == nil {
		return
	}
	m := l.m
	l.m = nil

	if l.next != nil && l.next != lockedNoWaiters {
		succ := l.next
		l.next = nil
		l.sched.Schedule(succ.cont)
		return
	}
	l.next = nil

	if last := m.tryUnlock(); last != lockedNoWaiters {
		l.sched.Schedule(last.cont)
	}
}

// Held reports whether this lock still owns the mutex.
func (l *UniqueLock) Held() bool {
	return l.m != nil
}
