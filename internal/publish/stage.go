package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
)

// StageResult holds metrics from the staging phase.
type StageResult struct {
	LinesBuilt  int
	LinesStaged int64
	Duration    time.Duration
}

// Stage flattens the record into diagnosis-grouped billing lines and
// replaces the case's lines in the store.
func Stage(ctx context.Context, store Store, log zerolog.Logger, pf *PreflightResult) (*StageResult, error) {
	start := time.Now()

	lines := grouping.Lines(pf.Record, pf.ExportBatchID.String())
	staged, err := store.ReplaceBillingLines(ctx, pf.Record.ID, pf.ExportBatchID, lines)
	if err != nil {
		return nil, fmt.Errorf("stage lines: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int("lines_built", len(lines)).
		Int64("lines_staged", staged).
		Str("export_batch_id", pf.ExportBatchID.String()).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		LinesBuilt:  len(lines),
		LinesStaged: staged,
		Duration:    dur,
	}, nil
}
