package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dmelo/ticketstats/internal/csvread"
	"github.com/dmelo/ticketstats/internal/model"
	"github.com/dmelo/ticketstats/internal/normalize"
)

// ErrEmptyDataset is returned when no input file yields a single valid row.
// Terminal for the session: there is nothing to filter or aggregate.
var ErrEmptyDataset = errors.New("no valid rows in any input file")

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Load runs parse → normalize → merge over a batch of export files.
// Pure with respect to ambient state: everything it produces is in the
// returned dataset and summary. Per-file failures become diagnostics and the
// batch continues; only an entirely empty result is an error.
func Load(ctx context.Context, log zerolog.Logger, schema *model.Schema, paths []string) (*model.Dataset, *model.LoadSummary, error) {
	start := time.Now()

	ds := &model.Dataset{}
	sum := &model.LoadSummary{BatchID: uuid.New().String()}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, &PipelineError{Phase: "parse", Err: err}
		}
		name := filepath.Base(path)

		tbl, err := csvread.Open(path)
		if err != nil {
			sum.FilesRejected++
			ds.Diagnostics = append(ds.Diagnostics,
				fmt.Sprintf("could not process file %s: %v", name, err))
			log.Warn().Str("file", name).Err(err).Msg("file rejected during parse")
			continue
		}

		tickets, stats, err := normalize.NormalizeTable(tbl, schema)
		if err != nil {
			sum.FilesRejected++
			ds.Diagnostics = append(ds.Diagnostics, fmt.Sprintf("file excluded: %v", err))
			log.Warn().Str("file", name).Err(err).Msg("file rejected during normalization")
			continue
		}

		sum.FilesRead++
		sum.RowsRead += stats.RowsRead
		sum.RowsKept += stats.RowsKept
		sum.RowsDropped += stats.RowsDropped
		ds.Tickets = append(ds.Tickets, tickets...)

		log.Info().
			Str("file", name).
			Int64("rows_read", stats.RowsRead).
			Int64("rows_kept", stats.RowsKept).
			Int64("rows_dropped", stats.RowsDropped).
			Msg("file normalized")
	}

	if sum.RowsDropped > 0 {
		ds.Diagnostics = append(ds.Diagnostics,
			fmt.Sprintf("%d row(s) dropped for missing or invalid required fields", sum.RowsDropped))
	}
	sum.DurationTotal = time.Since(start)

	if len(ds.Tickets) == 0 {
		return nil, sum, &PipelineError{Phase: "merge", Err: ErrEmptyDataset}
	}

	log.Info().
		Str("batch_id", sum.BatchID).
		Int("files_read", sum.FilesRead).
		Int("files_rejected", sum.FilesRejected).
		Int64("rows_kept", sum.RowsKept).
		Str("duration", sum.DurationTotal.String()).
		Msg("batch load complete")

	return ds, sum, nil
}
