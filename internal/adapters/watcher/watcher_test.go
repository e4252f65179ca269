package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libpack/internal/adapters/watcher"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// next returns the first event for which match holds, failing after timeout.
func next(t *testing.T, events <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if match(ev) {
				return ev
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for file event")
		}
	}
}

func startWatcher(t *testing.T, roots ...string) (*watcher.Watcher, <-chan ports.WatchEvent) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, roots...))
	t.Cleanup(func() { _ = w.Stop() })

	events := make(chan ports.WatchEvent)
	go func() {
		defer close(events)
		for ev := range w.Events() {
			events <- ev
		}
	}()
	return w, events
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o750))
	file := filepath.Join(src, "index.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {}"), 0o600))

	_, events := startWatcher(t, root)

	require.NoError(t, os.WriteFile(file, []byte("export const a = 1;"), 0o600))
	ev := next(t, events, func(ev ports.WatchEvent) bool { return ev.Path == file })
	assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)

	require.NoError(t, os.Remove(file))
	next(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == file && ev.Operation == ports.OpRemove
	})
}

func TestWatcher_WatchesCreatedDirectories(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root)

	dir := filepath.Join(root, "feature")
	require.NoError(t, os.Mkdir(dir, 0o750))
	next(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == dir && ev.Operation == ports.OpCreate
	})

	file := filepath.Join(dir, "feature.ts")
	// The directory is added after its create event is forwarded; retry until it is watched.
	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(file, []byte("export {}"), 0o600))
		select {
		case ev := <-events:
			if ev.Path == file {
				return
			}
		case <-time.After(100 * time.Millisecond):
		}
		require.True(t, time.Now().Before(deadline), "created directory was never watched")
	}
}

func TestWatcher_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	modules := filepath.Join(root, "node_modules", "dep")
	require.NoError(t, os.MkdirAll(modules, 0o750))
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o750))

	_, events := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(modules, "index.js"), nil, 0o600))
	marker := filepath.Join(src, "marker.ts")
	require.NoError(t, os.WriteFile(marker, nil, 0o600))

	for {
		ev := next(t, events, func(ports.WatchEvent) bool { return true })
		require.NotContains(t, ev.Path, "node_modules")
		if ev.Path == marker {
			return
		}
	}
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	w, events := startWatcher(t, t.TempDir())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "event stream not closed after stop")
	}
}
