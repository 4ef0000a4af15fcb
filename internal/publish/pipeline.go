package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/chart"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/config"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

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

// Store is the persistence surface the pipeline needs. *db.CaseStore satisfies it.
type Store interface {
	Fingerprint(ctx context.Context, id string) (string, bool, error)
	Save(ctx context.Context, rec *model.CaseRecord, fingerprint, sourcePath string) (bool, error)
	ReplaceBillingLines(ctx context.Context, caseID string, batchID uuid.UUID, lines []model.BillingLine) (int64, error)
	Analyze(ctx context.Context) error
}

// Run executes the publish pipeline for one record file: preflight →
// normalize → write back → persist → stage lines → finalize. A nil store
// stops after the write back.
func Run(ctx context.Context, store Store, log zerolog.Logger, cfg *config.Config) (*model.PublishSummary, error) {
	totalStart := time.Now()

	cat, err := cfg.Catalog()
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, store, log, cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	log = log.With().Str("case_id", pf.Record.ID).Logger()

	summary := &model.PublishSummary{
		FilePath:      pf.FilePath,
		FileSHA256:    pf.FileSHA256,
		CaseID:        pf.Record.ID,
		ExportBatchID: pf.ExportBatchID.String(),
	}

	// Phase 2: Normalize
	start := time.Now()
	sync, err := chart.Normalize(pf.Record, cat, log, chart.NormalizeOptions{
		MaterializeDefaults: cfg.MaterializeDefaults,
		MigrateLegacyKeys:   cfg.MigrateLegacyKeys,
	})
	if err != nil {
		return nil, &PipelineError{Phase: "normalize", Err: err}
	}
	sync.FilePath = pf.FilePath
	summary.Sync = sync
	summary.DurationNormalize = time.Since(start)

	// Phase 3: Write back
	wrote, err := WriteBack(log, pf, sync, cfg.DryRun)
	if err != nil {
		return nil, &PipelineError{Phase: "writeback", Err: err}
	}
	summary.WroteFile = wrote

	if store == nil {
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	// Phase 4: Persist
	start = time.Now()
	if pf.Stored && pf.StoredFingerprint == sync.FingerprintAfter && !cfg.Force {
		log.Info().
			Str("fingerprint", sync.FingerprintAfter).
			Msg("case unchanged since last save, skipping (use --force to re-publish)")
		summary.AlreadyStored = true
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}
	inserted, err := store.Save(ctx, pf.Record, sync.FingerprintAfter, pf.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "persist", Err: err}
	}
	summary.Inserted = inserted
	summary.DurationPersist = time.Since(start)

	// Phase 5: Stage billing lines
	stage, err := Stage(ctx, store, log, pf)
	if err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}
	summary.LinesStaged = stage.LinesStaged
	summary.DurationStage = stage.Duration

	// Phase 6: Finalize
	if err := Finalize(ctx, store, log); err != nil {
		log.Warn().Err(err).Msg("finalize failed (non-fatal)")
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Bool("inserted", summary.Inserted).
		Int64("lines_staged", summary.LinesStaged).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("publish pipeline complete")

	return summary, nil
}
