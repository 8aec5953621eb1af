package watcher

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })
	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRelevant(t *testing.T) {
	w := New("/data/abbr.db", time.Second, func() error { return nil }, newTestLogger())
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/data/abbr.db", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/abbr.db-journal", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/data/abbr.db-wal", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/data/abbr.db", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/other.db", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/data/abbr.dbx", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.event), tt.event.String())
	}
}

func TestFileWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbr.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	var reloads atomic.Int32
	w := New(path, 20*time.Millisecond, func() error {
		reloads.Add(1)
		return nil
	}, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 等待监听器就绪后再写入
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("v2"), 0644)
		return reloads.Load() > 0
	}, 2*time.Second, 100*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
