// Package pipeline runs one load, normalize and emit pass.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"healthsites/internal/config"
	"healthsites/internal/formatter"
	"healthsites/internal/loader"
	"healthsites/internal/logger"
	"healthsites/internal/metrics"
	"healthsites/internal/normalizer"
	"healthsites/internal/storage"
	"healthsites/pkg/checksum"
)

// Pipeline wires the stages together. Only Run touches the filesystem.
type Pipeline struct {
	cfg      *config.Config
	logger   *logger.Logger
	out      io.Writer
	writer   *storage.JSONWriter
	sink     storage.FacilitySink
	recorder *metrics.Recorder
	now      func() time.Time
}

// Report is what a successful run produced.
type Report struct {
	Result *normalizer.Result
	Full   *storage.WriteResult
	Sample *storage.WriteResult
}

// New creates a pipeline that prints its console report to out.
func New(cfg *config.Config, log *logger.Logger, out io.Writer) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}

	if out == nil {
		out = io.Discard
	}

	return &Pipeline{
		cfg:      cfg,
		logger:   log,
		out:      out,
		writer:   storage.NewJSONWriter(log),
		recorder: metrics.NewRecorder(),
		now:      time.Now,
	}
}

// WithSink adds a database mirror of the full facility list.
func (p *Pipeline) WithSink(sink storage.FacilitySink) *Pipeline {
	p.sink = sink
	return p
}

// Run executes the pass. Any error aborts before later stages run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := p.now()
	in := p.cfg.Normalizer.Input

	// 1. Load
	table, err := loader.Load(in.Path, loader.Options{
		Format:   p.cfg.InputFormat(),
		Encoding: in.Encoding,
		Sheet:    in.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	if hash, hashErr := checksum.FileHash(in.Path); hashErr == nil {
		p.logger.Info("Loaded input", "path", in.Path, "rows", len(table.Rows), "sha256", hash)
	}

	fmt.Fprint(p.out, formatter.FormatLoad(table, filepath.Base(in.Path)))

	// 2. Transform
	processor := normalizer.NewProcessor(p.cfg.Normalizer.Output.SampleSize, p.logger)

	result, err := processor.Process(table)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "\nProcessed %d facilities with complete data\n", result.Stats.FacilitiesEmitted)
	fmt.Fprint(p.out, formatter.FormatSummary(result.Document.Summary))

	if result.Stats.RowsSkipped > 0 {
		p.logger.Info("Skipped rows without facility type", "count", result.Stats.RowsSkipped)
	}

	// 3. Emit
	full, err := p.writer.Write(p.cfg.OutputPath(), result.Document)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	sample, err := p.writer.Write(p.cfg.SamplePath(), result.Sample)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	if full.Unchanged && sample.Unchanged {
		p.logger.Info("Outputs unchanged since last run")
	}

	if p.sink != nil {
		if err := p.sink.SaveFacilities(ctx, result.Document.Facilities); err != nil {
			return nil, fmt.Errorf("database sink failed: %w", err)
		}
	}

	if textfile := p.cfg.Normalizer.Metrics.Textfile; textfile != "" {
		p.recorder.Observe(result.Stats.RowsLoaded, result.Stats.RowsSkipped,
			result.Document.Summary.FacilityTypes, p.now().Sub(start), p.now())

		if err := p.recorder.WriteTextfile(textfile); err != nil {
			p.logger.Warn("Metrics not written", "path", textfile, "error", err)
		}
	}

	fmt.Fprint(p.out, formatter.FormatOutputs(full.Path, sample.Path, sample.SizeKB()))

	return &Report{Result: result, Full: full, Sample: sample}, nil
}
