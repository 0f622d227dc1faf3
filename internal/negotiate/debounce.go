package negotiate

import (
	"sync"
	"time"
)

// DefaultResizeQuiescence is the trailing window used for resize events.
const DefaultResizeQuiescence = 150 * time.Millisecond

// Debouncer coalesces a burst of events into a single callback fired after a
// quiescence window. Each Trigger re-arms the timer, so only the last event
// of a burst takes effect.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given trailing window.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultResizeQuiescence
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the quiescence window, cancelling any
// previously scheduled run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
