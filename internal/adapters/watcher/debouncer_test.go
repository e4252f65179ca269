package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/watcher"
	"go.trai.ch/libpack/internal/core/ports"
)

type batches struct {
	mu  sync.Mutex
	got [][]ports.WatchEvent
}

func (b *batches) record(batch []ports.WatchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, batch)
}

func (b *batches) all() [][]ports.WatchEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.got
}

func write(path string) ports.WatchEvent {
	return ports.WatchEvent{Path: path, Operation: ports.OpWrite}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add(write("/lib/src/b.ts"))
		time.Sleep(50 * time.Millisecond)
		d.Add(write("/lib/src/a.ts"))
		time.Sleep(50 * time.Millisecond)
		d.Add(ports.WatchEvent{Path: "/lib/src/b.ts", Operation: ports.OpRemove})

		time.Sleep(99 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.all(), "quiet period restarts on every event")

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()

		got := b.all()
		require.Len(t, got, 1)
		assert.Equal(t, []ports.WatchEvent{
			write("/lib/src/a.ts"),
			{Path: "/lib/src/b.ts", Operation: ports.OpRemove},
		}, got[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add(write("/lib/a.ts"))
		time.Sleep(150 * time.Millisecond)
		d.Add(write("/lib/b.ts"))
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]ports.WatchEvent{
			{write("/lib/a.ts")},
			{write("/lib/b.ts")},
		}, b.all())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(time.Second, b.record)

		d.Flush()
		assert.Empty(t, b.all(), "nothing pending")

		d.Add(write("/lib/a.ts"))
		d.Flush()
		require.Len(t, b.all(), 1)

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Len(t, b.all(), 1, "flushed events are not delivered again")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add(write("/lib/a.ts"))
		d.Stop()
		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, b.all())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add(write("/lib/a.ts"))
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
