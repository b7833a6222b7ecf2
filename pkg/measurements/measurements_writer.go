package measurements

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// NewWriter creates the parent directory of path if needed and
// creates (or truncates) the file at path.
// metrics can be nil.
func NewWriter(logger log.Logger, path string, metrics *Metrics) (Writer, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IoError{Op: "mkdir", Path: dir, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &IoError{Op: "create", Path: path, Err: err}
	}

	return &writerT{
		logger:  logger,
		path:    path,
		metrics: metrics,
		file:    f,
	}, nil
}

// writerT is implementation of Writer interface
type writerT struct {
	// logger and path are given to us as args
	logger log.Logger
	path   string

	metrics *Metrics
	file    *os.File

	// batch holds lines written since last Flush.
	batch []byte

	// written is incremented on every successful Flush
	written int64
	closed  bool
}

func (w *writerT) Write(line []byte) error {
	if w.closed {
		return &IoError{Op: "write", Path: w.path, Err: os.ErrClosed}
	}

	// Simply buffer in memory until Flush() is called.
	w.batch = append(w.batch, line...)
	return nil
}

func (w *writerT) Flush() error {
	if w.closed {
		return &IoError{Op: "write", Path: w.path, Err: os.ErrClosed}
	}
	if len(w.batch) == 0 {
		return nil
	}

	start := time.Now()
	n, err := w.file.Write(w.batch)
	w.written += int64(n)
	w.metrics.bytesWritten.Add(float64(n))
	if err != nil {
		return &IoError{Op: "write", Path: w.path, Err: err}
	}

	took := time.Since(start)
	w.metrics.batchesFlushed.Inc()
	w.metrics.flushDuration.Observe(took.Seconds())
	level.Debug(w.logger).Log("msg", "batch flushed", "bytes", humanize.Bytes(uint64(n)), "total", humanize.Bytes(uint64(w.written)), "took", took)

	// Keep the backing array, next batch is about the same size.
	w.batch = w.batch[:0]
	return nil
}

func (w *writerT) Close() error {
	if w.closed {
		return nil
	}

	flushErr := w.Flush()
	w.closed = true
	w.batch = nil

	if err := w.file.Close(); err != nil && flushErr == nil {
		return &IoError{Op: "close", Path: w.path, Err: err}
	}

	return flushErr
}
