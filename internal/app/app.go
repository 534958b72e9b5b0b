// Package app wires configuration, logging and the rule pipeline into a
// line-oriented styled text processor.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dshills/styledtext/internal/config"
	"github.com/dshills/styledtext/internal/logging"
	"github.com/dshills/styledtext/internal/pipeline"
	"github.com/dshills/styledtext/internal/styled"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// Options configures the application. Non-zero fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the path to the rule file.
	ConfigPath string

	// Format overrides the output format.
	Format string

	// Stats enables the statistics report.
	Stats bool

	// LogLevel overrides the logging level.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// StatsOutput receives the statistics report. Defaults to os.Stderr.
	StatsOutput io.Writer

	// ConfigOptions are passed to config.Load.
	ConfigOptions []config.Option
}

// Application reads markup lines, runs them through the pipeline and writes
// the results.
type Application struct {
	config   *config.Config
	pipeline *pipeline.Pipeline
	logger   *logging.Logger
	metrics  *Metrics
	write    recordWriter
	stats    io.Writer
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.ConfigOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Stats {
		cfg.Output.Stats = true
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: opts.LogOutput,
		Prefix: cfg.Logging.Prefix,
	})
	logging.SetDefault(logger)
	styled.SetLogger(logger.WithComponent("styled"))

	write, err := writerFor(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	p, err := pipeline.Build(cfg.Rules, pipeline.WithLogger(logger.WithComponent("pipeline")))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	stats := opts.StatsOutput
	if stats == nil {
		stats = os.Stderr
	}

	logger.WithFields(map[string]any{
		"rules":  len(cfg.Rules),
		"format": cfg.Output.Format,
	}).Debug("initialized")

	return &Application{
		config:   cfg,
		pipeline: p,
		logger:   logger,
		metrics:  NewMetrics(),
		write:    write,
		stats:    stats,
	}, nil
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config {
	return a.config
}

// Metrics returns the application's metrics.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// Run processes in line by line until EOF or ctx is cancelled. Each line is
// parsed as markup; sentence case continues across lines.
func (a *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	bw := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		start := time.Now()
		result := a.pipeline.Process(styled.ParseMarkup(sc.Text()))
		st := a.metrics.RecordLine(line, result, time.Since(start))

		n, err := a.write(bw, result)
		a.metrics.RecordOutput(n)
		if err != nil {
			return NewOperationError("write output", line, err)
		}
		if a.config.Output.Stats {
			fmt.Fprintf(a.stats, "line %d: %d chars, %d graphemes\n", st.Line, st.Runes, st.Graphemes)
		}
	}
	if err := sc.Err(); err != nil {
		return NewOperationError("read input", line+1, err)
	}
	if err := bw.Flush(); err != nil {
		return NewOperationError("write output", 0, err)
	}

	if a.config.Output.Stats {
		a.writeSummary()
	}
	a.logger.WithField("lines", line).Info("done")
	return nil
}

func (a *Application) writeSummary() {
	snap := a.metrics.Snapshot()
	fmt.Fprintf(a.stats, "total: %d lines, %d chars, %d graphemes\n", snap.Lines, snap.Runes, snap.Graphemes)
	counts := a.pipeline.Counts()
	for i, step := range a.pipeline.Steps() {
		fmt.Fprintf(a.stats, "rule %d (%s): %d\n", i+1, step.Description(), counts[i])
	}
}

// recordWriter writes one processed line.
type recordWriter func(w io.Writer, s *styled.String) (int64, error)

func writerFor(format string) (recordWriter, error) {
	switch format {
	case config.FormatMarkup:
		return lineWriter((*styled.String).Markup), nil
	case config.FormatText:
		return lineWriter((*styled.String).Text), nil
	case config.FormatJSON:
		return func(w io.Writer, s *styled.String) (int64, error) {
			data, err := s.MarshalJSON()
			if err != nil {
				return 0, err
			}
			n, err := w.Write(append(data, '\n'))
			return int64(n), err
		}, nil
	case config.FormatBinary:
		return func(w io.Writer, s *styled.String) (int64, error) {
			return s.WriteTo(w)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func lineWriter(render func(*styled.String) string) recordWriter {
	return func(w io.Writer, s *styled.String) (int64, error) {
		n, err := io.WriteString(w, render(s)+"\n")
		return int64(n), err
	}
}
