// Command measurements generates the "1 Billion Row Challenge" input file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/promlog"
	promlogflag "github.com/prometheus/common/promlog/flag"
	"github.com/prometheus/common/version"
	_ "go.uber.org/automaxprocs"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/am17an/1-billion-row-challenge/pkg/measurements"
	"github.com/am17an/1-billion-row-challenge/pkg/stations"
)

const (
	defaultStationsFile = "data/weather_stations.csv"
	defaultOutputFile   = "datasets/measurements.txt"
)

// ConfigError is an invalid command line value.
type ConfigError struct {
	Name  string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Name, e.Value, e.Err)
}

func (e *ConfigError) Cause() error  { return e.Err }
func (e *ConfigError) Unwrap() error { return e.Err }

// runConfig is everything the command line can change.
type runConfig struct {
	rows            int64
	batchSize       int
	stationsFile    string
	outputFile      string
	metricsTextfile string
}

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses args, runs the generator and returns the exit status.
func runMain(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New(filepath.Base(os.Args[0]), "Generates the 1 Billion Row Challenge measurements file: lines of <station>;<temperature>.")
	app.Version(version.Print("measurements"))
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	// flags is one place for command-line args
	var flags struct {
		rows            *string
		batchSize       *int
		stationsFile    *string
		outputFile      *string
		metricsTextfile *string
	}
	{
		flags.rows = app.Arg("rows", "Number of measurements to generate.").
			Default(strconv.Itoa(measurements.DefaultRows)).String()
		flags.stationsFile = app.Flag("stations.file", "CSV file with station_name and mean_temp columns.").
			Default(defaultStationsFile).String()
		flags.outputFile = app.Flag("output.file", "File to write measurements to. Overwritten if it exists.").
			Default(defaultOutputFile).String()
		flags.batchSize = app.Flag("batch-size", "Number of lines held in memory and written to disk at once.").
			Default(strconv.Itoa(measurements.DefaultBatchSize)).Int()
		flags.metricsTextfile = app.Flag("metrics.textfile", "If set, run metrics are written to this file in Prometheus text format.").
			String()
	}

	logConfig := promlog.Config{}
	promlogflag.AddFlags(app, &logConfig)

	if _, err := app.Parse(args); err != nil {
		return usage(app, stderr, args, err)
	}

	rows, err := parseRows(*flags.rows)
	if err != nil {
		return usage(app, stderr, args, err)
	}
	if *flags.batchSize <= 0 {
		return usage(app, stderr, args, &ConfigError{
			Name:  "batch size",
			Value: strconv.Itoa(*flags.batchSize),
			Err:   errors.New("must be a positive integer"),
		})
	}

	cfg := runConfig{
		rows:            rows,
		batchSize:       *flags.batchSize,
		stationsFile:    *flags.stationsFile,
		outputFile:      *flags.outputFile,
		metricsTextfile: *flags.metricsTextfile,
	}

	logger := promlog.New(&logConfig)
	if err := generate(logger, stdout, cfg); err != nil {
		level.Error(logger).Log("msg", "generation failed", "err", err)
		fmt.Fprintf(stderr, "\nERROR: %v\n", err)
		return 1
	}

	return 0
}

// usage prints err with the usage text and returns the exit status for it.
func usage(app *kingpin.Application, stderr io.Writer, args []string, err error) int {
	fmt.Fprintf(stderr, "error: %v\n\n", err)
	app.Usage(args)
	return 2
}

// rowsRe allows single `_` separators between digits.
var rowsRe = regexp.MustCompile(`^[0-9]+(_[0-9]+)*$`)

// parseRows accepts a positive decimal integer, `_` separators allowed.
func parseRows(s string) (int64, error) {
	if !rowsRe.MatchString(s) {
		return 0, &ConfigError{Name: "rows", Value: s, Err: errors.New("not an integer")}
	}
	rows, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil {
		return 0, &ConfigError{Name: "rows", Value: s, Err: errors.New("not an integer")}
	}
	if rows <= 0 {
		return 0, &ConfigError{Name: "rows", Value: s, Err: errors.New("must be a positive integer")}
	}
	return rows, nil
}

func generate(logger log.Logger, stdout io.Writer, cfg runConfig) error {
	fmt.Fprintf(stdout, "Loading weather stations from %s...\n", cfg.stationsFile)
	table, err := stations.Load(cfg.stationsFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Loaded %d weather stations\n", len(table))
	level.Info(logger).Log("msg", "stations loaded", "file", cfg.stationsFile, "count", len(table))

	reg := prometheus.NewRegistry()
	metrics := measurements.NewMetrics(reg)
	progress := measurements.NewProgress(stdout)

	genConfig := measurements.DefaultGeneratorConfig(cfg.rows)
	genConfig.BatchSize = cfg.batchSize
	genConfig.Progress = progress
	genConfig.Metrics = metrics

	generator, err := measurements.NewGenerator(logger, genConfig)
	if err != nil {
		return errors.Wrap(err, "measurements.NewGenerator")
	}

	fmt.Fprintf(stdout, "Generating %s measurements to %s...\n", humanize.Comma(cfg.rows), cfg.outputFile)
	fmt.Fprintln(stdout, "This may take a while for large datasets...")

	writer, err := measurements.NewWriter(logger, cfg.outputFile, metrics)
	if err != nil {
		return err
	}

	var g run.Group
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return generator.Generate(ctx, writer, table)
		}, func(error) {
			cancel()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return interrupt(logger, cancel)
		}, func(error) {
			close(cancel)
		})
	}
	if err := g.Run(); err != nil {
		return err
	}

	info, err := os.Stat(cfg.outputFile)
	if err != nil {
		return &measurements.IoError{Op: "stat", Path: cfg.outputFile, Err: err}
	}
	progress.Summary(cfg.outputFile, info.Size())
	level.Info(logger).Log("msg", "measurements written", "file", cfg.outputFile, "size", humanize.Bytes(uint64(info.Size())), "took", progress.Elapsed())

	if cfg.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.metricsTextfile, reg); err != nil {
			return &measurements.IoError{Op: "write metrics", Path: cfg.metricsTextfile, Err: err}
		}
	}

	return nil
}

// interrupt returns an error once SIGINT or SIGTERM arrives, or nil when cancel is closed.
func interrupt(logger log.Logger, cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case s := <-c:
		level.Info(logger).Log("msg", "caught signal, stopping after current batch", "signal", s)
		return errors.Errorf("interrupted by %s, output file is incomplete", s)
	case <-cancel:
		return nil
	}
}
