// Test Type: Integration Test
// Description: Tests for the directory watcher - initial run, debounced re-runs, new directories and shutdown

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	runs atomic.Int32
	ch   chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) run(context.Context) error {
	r.runs.Add(1)
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
	}
}

func startWatcher(t *testing.T, root string, rec *recorder) (cancel func(), done chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done = make(chan error, 1)
	w := New(root, rec.run, WithDebounce(50*time.Millisecond), WithIgnoreDirs(".git"))
	go func() { done <- w.Watch(ctx) }()
	rec.wait(t) // initial run
	return cancel, done
}

func stop(t *testing.T, cancel func(), done chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_RunsOnChange(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	cancel, done := startWatcher(t, root, rec)
	defer stop(t, cancel, done)

	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0644))
	rec.wait(t)
	assert.GreaterOrEqual(t, rec.runs.Load(), int32(2))
}

func TestWatch_Debounces(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	cancel, done := startWatcher(t, root, rec)
	defer stop(t, cancel, done)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte{byte('a' + i)}, 0644))
	}
	rec.wait(t)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), rec.runs.Load(), "a burst of writes is a single run")
}

func TestWatch_NewDirectory(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	cancel, done := startWatcher(t, root, rec)
	defer stop(t, cancel, done)

	sub := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(sub, 0755))
	rec.wait(t)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "guide.md"), []byte("x"), 0644))
	rec.wait(t)
}

func TestWatch_MissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	assert.Error(t, w.Watch(context.Background()))
}

func TestIgnored(t *testing.T) {
	w := New("/project", nil, WithIgnoreDirs(".git", "target"))
	assert.True(t, w.ignored("/project/.git/index"))
	assert.True(t, w.ignored("/project/sub/target/A.class"))
	assert.False(t, w.ignored("/project/src/A.java"))
}
