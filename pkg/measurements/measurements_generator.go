package measurements

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"

	"github.com/am17an/1-billion-row-challenge/pkg/randval"
	"github.com/am17an/1-billion-row-challenge/pkg/stations"
)

const (
	// DefaultRows is the size of the challenge file.
	DefaultRows = 1000000000

	// DefaultBatchSize is the number of lines held in memory between flushes.
	DefaultBatchSize = 10000000
)

// GeneratorConfig says how much data to generate and how.
type GeneratorConfig struct {
	// Rows is the exact number of lines to generate.
	Rows int64

	// BatchSize is the number of lines written to disk at once.
	BatchSize int

	// Sampler configures the temperature distribution.
	Sampler randval.Config

	// Progress is told about every flushed batch. Optional.
	Progress ProgressReporter

	// Metrics receives the generated row count. Optional.
	Metrics *Metrics
}

// DefaultGeneratorConfig returns config to generate given number of rows.
func DefaultGeneratorConfig(rows int64) GeneratorConfig {
	return GeneratorConfig{
		Rows:      rows,
		BatchSize: DefaultBatchSize,
		Sampler:   randval.DefaultConfig(),
	}
}

// NewGenerator validates config and creates a generator.
func NewGenerator(logger log.Logger, config GeneratorConfig) (Generator, error) {
	if config.Rows <= 0 {
		return nil, errors.Errorf("rows must be positive, got %d", config.Rows)
	}
	if config.BatchSize <= 0 {
		return nil, errors.Errorf("batch size must be positive, got %d", config.BatchSize)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if config.Progress == nil {
		config.Progress = nopProgress{}
	}
	if config.Metrics == nil {
		config.Metrics = NewMetrics(nil)
	}

	return &generatorT{
		logger: logger,
		config: config,
	}, nil
}

// generatorT is implementation of Generator.
type generatorT struct {
	logger log.Logger
	config GeneratorConfig
}

func (g *generatorT) Generate(ctx context.Context, writer Writer, table []stations.Station) (err error) {
	// close on exit, keeping the first error
	defer func() {
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
	}()

	if len(table) == 0 {
		return &stations.DataError{Err: errors.New("empty stations table")}
	}

	rows := g.config.Rows
	batchSize := int64(g.config.BatchSize)
	sampler := randval.NewSampler(g.config.Sampler)

	level.Info(g.logger).Log("msg", "generating measurements", "rows", rows, "batch_size", batchSize, "stations", len(table))
	start := time.Now()
	g.config.Progress.Start(rows)

	var (
		line    []byte
		written int64
	)
	for written < rows {
		// the only place we stop early, so the file always ends on a whole batch
		if err := ctx.Err(); err != nil {
			level.Warn(g.logger).Log("msg", "generation interrupted", "written", written, "rows", rows)
			return errors.Wrap(err, "generate")
		}

		n := rows - written
		if n > batchSize {
			n = batchSize
		}

		for i := int64(0); i < n; i++ {
			st := table[sampler.Intn(len(table))]
			line = AppendMeasurement(line[:0], st.Name, sampler.Next(st.Mean))
			if err := writer.Write(line); err != nil {
				return err
			}
		}

		if err := writer.Flush(); err != nil {
			return err
		}

		written += n
		g.config.Metrics.rowsGenerated.Add(float64(n))
		g.config.Progress.Update(written)
	}

	level.Info(g.logger).Log("msg", "measurements generated", "rows", written, "took", time.Since(start))
	return nil
}

type nopProgress struct{}

func (nopProgress) Start(int64)  {}
func (nopProgress) Update(int64) {}
