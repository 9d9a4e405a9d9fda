package dataset

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherFiresAfterDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movies": []}`), 0o644))

	w, err := NewWatcher(path, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer w.Stop()
	w.debouncePeriod = 50 * time.Millisecond

	var fired atomic.Int32
	done := make(chan struct{}, 1)
	w.OnReload(func(p string) {
		require.Equal(t, path, p)
		fired.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
	})
	w.Start()

	// Several rapid writes collapse into one callback
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"movies": []}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reload callback never fired")
	}

	// Let any stragglers land before counting
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load(), "rapid writes must debounce into one reload")
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop().Sugar())
	require.Error(t, err)
}
