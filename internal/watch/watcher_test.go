package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "husky"), 0o755))

	var reloads atomic.Int32
	w, err := New(root, func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "husky", "SKILL.md"), []byte("---\nname: husky\n---\n"), 0o644))

	assert.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}

func TestWatcher_TracksNewSubdirectories(t *testing.T) {
	root := t.TempDir()

	var reloads atomic.Int32
	w, err := New(root, func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	newDir := filepath.Join(root, "cypress")
	require.NoError(t, os.MkdirAll(newDir, 0o755))

	assert.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	before := reloads.Load()
	require.NoError(t, os.WriteFile(filepath.Join(newDir, "SKILL.md"), []byte("x"), 0o644))
	assert.Eventually(t, func() bool {
		return reloads.Load() > before
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcher_ReloadsAfterEveryBurst(t *testing.T) {
	root := t.TempDir()

	var reloads atomic.Int32
	w, err := New(root, func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Event bursts arriving around a debounce expiry must not strand a
	// scheduled reload; every burst eventually produces one.
	for burst := 0; burst < 3; burst++ {
		before := reloads.Load()
		for i := 0; i < 5; i++ {
			name := filepath.Join(root, fmt.Sprintf("skill-%d.md", i))
			require.NoError(t, os.WriteFile(name, []byte(fmt.Sprintf("rev %d", burst)), 0o644))
			time.Sleep(20 * time.Millisecond)
		}
		require.Eventually(t, func() bool {
			return reloads.Load() > before
		}, 5*time.Second, 50*time.Millisecond, "burst %d produced no reload", burst)
	}
}

func TestWatcher_MissingRootFails(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), func() error { return nil })
	assert.Error(t, err)
}
