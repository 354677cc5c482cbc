package sim

import (
	"errors"
	"fmt"
)

// ErrDegenerateState indicates a NaN or Inf crept into the committed
// state. This is a defect, not a recoverable condition; the run aborts
// rather than log garbage.
var ErrDegenerateState = errors.New("sim: degenerate state (NaN or Inf)")

// TickError wraps a failure with the tick it happened on. The partial
// result up to the failing tick is still returned.
type TickError struct {
	Tick int
	Time float64
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Err)
}

func (e *TickError) Unwrap() error { return e.Err }
