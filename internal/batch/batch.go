// Package batch ingests a directory of statement files in one run.
package batch

import (
	"context"

	"pvillar/hogarfin/internal/factory"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/pipeline"
	"pvillar/hogarfin/internal/scanner"
)

// FileResult is the outcome for one statement file. Err is set when the file
// could not be parsed; its stats are zero in that case.
type FileResult struct {
	File  string
	Stats models.ImportStats
	Err   error
}

// Summary aggregates a batch run: per-file outcomes plus merged counts over
// the files that parsed.
type Summary struct {
	Results []FileResult
	Stats   models.ImportStats
	Failed  int
}

// Runner drives batch ingestion.
type Runner struct {
	scanner  *scanner.StatementScanner
	pipeline *pipeline.Pipeline
	logger   logging.Logger
}

// NewRunner creates a batch runner.
func NewRunner(sc *scanner.StatementScanner, pl *pipeline.Pipeline, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Runner{scanner: sc, pipeline: pl, logger: logger}
}

// Run scans dir and ingests every statement file found into the history
// stored under key, tagged with dataUser. A file that fails to parse is
// recorded and the batch moves on; a storage failure aborts the whole run.
func (r *Runner) Run(ctx context.Context, dir, key, dataUser string) (*Summary, error) {
	files, err := r.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, file := range files {
		p, err := factory.GetParserForFile(file, r.logger)
		if err != nil {
			summary.Results = append(summary.Results, FileResult{File: file, Err: err})
			summary.Failed++
			continue
		}

		parsed, err := p.ParseFile(file)
		if err != nil {
			r.logger.WithError(err).WithFields(
				logging.Field{Key: logging.FieldFile, Value: file},
			).Error("Failed to parse statement file")
			summary.Results = append(summary.Results, FileResult{File: file, Err: err})
			summary.Failed++
			continue
		}

		result, err := r.pipeline.Ingest(ctx, parsed, key, dataUser)
		if err != nil {
			return nil, err
		}

		summary.Results = append(summary.Results, FileResult{File: file, Stats: result.Stats})
		summary.Stats.Merge(result.Stats)
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldImported, Value: summary.Stats.Imported},
		logging.Field{Key: logging.FieldSkipped, Value: summary.Stats.SkippedDuplicate},
		logging.Field{Key: logging.FieldRejected, Value: summary.Stats.Rejected},
	).Info("Batch ingestion finished")
	return summary, nil
}
