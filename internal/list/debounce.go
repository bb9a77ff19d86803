package list

import (
	"sync"
	"time"
)

// Debouncer delays propagation of rapid string updates until they settle.
// It keeps a single pending timer slot: a new value arriving before the
// quiet period elapses discards the pending emission and restarts the
// timer, so at most one value per quiet period reaches the sink and
// intermediate values are never emitted.
//
// The sink runs with the debouncer's lock held and must not call back into
// the debouncer.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	quiet   time.Duration
	sink    func(string)
	stopped bool
}

// NewDebouncer creates a debouncer that emits settled values to sink.
func NewDebouncer(quiet time.Duration, sink func(string)) *Debouncer {
	return &Debouncer{
		quiet: quiet,
		sink:  sink,
	}
}

// Update feeds a new raw value. Any pending emission is cancelled and the
// quiet period restarts.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		// A newer update or Stop superseded this timer while it was
		// waiting on the lock.
		if d.stopped || gen != d.gen {
			return
		}

		d.timer = nil
		d.sink(value)
	})
}

// Flush cancels any pending emission and delivers value immediately.
func (d *Debouncer) Flush(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.sink(value)
}

// Stop cancels any pending emission. No value is emitted after Stop
// returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
