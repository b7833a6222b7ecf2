package measurements

import (
	"context"

	"github.com/am17an/1-billion-row-challenge/pkg/stations"
)

// Writer is interface to write measurement lines into a file in batches.
type Writer interface {
	// Write appends one line to the current batch, in memory.
	Write(line []byte) error

	// Flush writes current batch to disk in a single write.
	Flush() error

	// Close flushes what is left and closes the file.
	Close() error
}

// Generator generates synthetic measurements for a table of stations.
type Generator interface {
	// Generate writes the configured number of rows and closes writer.
	// An empty table is a *stations.DataError.
	Generate(ctx context.Context, writer Writer, table []stations.Station) error
}

// ProgressReporter is told how far generation got after each batch.
type ProgressReporter interface {
	Start(total int64)
	Update(written int64)
}
