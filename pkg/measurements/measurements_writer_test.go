package measurements

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	logger := log.NewLogfmtLogger(os.Stderr)
	path := filepath.Join(t.TempDir(), "datasets", "nested", "measurements.txt")
	metrics := NewMetrics(prometheus.NewRegistry())

	w, err := NewWriter(logger, path, metrics)
	require.NoError(t, err)

	// directory and empty file exist before any data is written
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	require.NoError(t, w.Write([]byte("a;1.0\n")))
	require.NoError(t, w.Write([]byte("b;2.0\n")))

	// nothing on disk until flush
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b)

	require.NoError(t, w.Flush())
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;1.0\nb;2.0\n", string(b))

	// empty flush is a no-op
	require.NoError(t, w.Flush())

	require.NoError(t, w.Write([]byte("c;3.0\n")))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;1.0\nb;2.0\nc;3.0\n", string(b))

	assert.Equal(t, 18.0, testutil.ToFloat64(metrics.bytesWritten))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.batchesFlushed))

	err = w.Write([]byte("d;4.0\n"))
	require.Error(t, err)
	assert.True(t, IsIoError(err))
}

func TestWriter_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurements.txt")
	require.NoError(t, os.WriteFile(path, []byte("old;1.0\nold;2.0\nold;3.0\n"), 0o644))

	w, err := NewWriter(nil, path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("new;1.0\n")))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new;1.0\n", string(b))
}

func TestWriter_Errors(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notADir, nil, 0o644))

	t.Run("parent is a file", func(t *testing.T) {
		_, err := NewWriter(nil, filepath.Join(notADir, "sub", "measurements.txt"), nil)
		require.Error(t, err)
		assert.True(t, IsIoError(err))
		assert.Contains(t, err.Error(), "mkdir")
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := NewWriter(nil, dir, nil)
		require.Error(t, err)
		assert.True(t, IsIoError(err))
		assert.Contains(t, err.Error(), "create")
	})
}
