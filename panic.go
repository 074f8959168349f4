package strand

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered inside a task body together with
// the goroutine stack captured at the point of the panic.
//
// Failures never cross between tasks implicitly: a panicking task
// surfaces a *PanicError to its awaiter the same way a returned error
// would.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

// Error returns the panic value followed by the captured stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	// runtime.Stack truncates gracefully if the trace exceeds the buffer.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
