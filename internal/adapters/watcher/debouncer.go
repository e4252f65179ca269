package watcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"go.trai.ch/libpack/internal/core/ports"
)

// DefaultDebounceWindow is the quiet period after which a batch of changes is delivered.
const DefaultDebounceWindow = 100 * time.Millisecond

// Debouncer coalesces bursts of file events into one batch per quiet period. A path that
// changes several times in a burst is delivered once with its last operation.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(batch []ports.WatchEvent)
}

// NewDebouncer creates a debouncer delivering batches to callback.
func NewDebouncer(window time.Duration, callback func(batch []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records event and restarts the quiet period.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[event.Path] = event.Operation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	batch := d.drain()
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		d.callback(batch)
	}
}

// Flush delivers the pending batch synchronously. It does nothing when the timer already
// fired.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	batch := d.drain()
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		d.callback(batch)
	}
}

// Stop discards pending events.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

// drain must be called with mu held.
func (d *Debouncer) drain() []ports.WatchEvent {
	if len(d.pending) == 0 {
		return nil
	}
	batch := make([]ports.WatchEvent, 0, len(d.pending))
	for path, op := range d.pending {
		batch = append(batch, ports.WatchEvent{Path: path, Operation: op})
	}
	clear(d.pending)
	slices.SortFunc(batch, func(a, b ports.WatchEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return batch
}
