package measurements

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Progress prints a human readable progress line after every batch,
// and a summary at the end of the run.
type Progress struct {
	out   io.Writer
	now   func() time.Time
	total int64
	start time.Time
}

// NewProgress creates progress printing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out: out,
		now: time.Now,
	}
}

// Start resets the clock.
func (p *Progress) Start(total int64) {
	p.total = total
	p.start = p.now()
}

// Update rewrites the progress line in place.
func (p *Progress) Update(written int64) {
	elapsed := p.Elapsed().Seconds()

	var pct, rate, eta float64
	if p.total > 0 {
		pct = float64(written) / float64(p.total) * 100
	}
	if elapsed > 0 {
		rate = float64(written) / elapsed
	}
	if rate > 0 {
		eta = float64(p.total-written) / rate
	}

	fmt.Fprintf(p.out, "\rProgress: %.1f%% (%s/%s) - %.0fs elapsed - %s rows/sec - ETA: %.0fs",
		pct, humanize.Comma(written), humanize.Comma(p.total), elapsed, humanize.Comma(int64(rate)), eta)
}

// Elapsed returns time since Start.
func (p *Progress) Elapsed() time.Duration {
	return p.now().Sub(p.start)
}

// Summary prints total time and final size of the file at path.
func (p *Progress) Summary(path string, size int64) {
	fmt.Fprintf(p.out, "\n\nCompleted in %.1f seconds\n", p.Elapsed().Seconds())
	fmt.Fprintf(p.out, "File size: %.2f GB\n", float64(size)/(1<<30))
	fmt.Fprintf(p.out, "Output: %s\n", path)
}
