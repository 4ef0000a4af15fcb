package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/normalize"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file as read.
	FileSHA256 string
	// Record is the decoded case record. Its ID is assigned when the file had none.
	Record *model.CaseRecord
	// AssignedID is true when the file carried no case ID.
	AssignedID bool
	// ExportBatchID tags the billing lines staged by this run.
	ExportBatchID uuid.UUID
	// Stored is true when the case already exists in the store.
	Stored bool
	// StoredFingerprint is the fingerprint saved with the stored case.
	StoredFingerprint string
}

// Preflight hashes and decodes the record file and looks up any stored copy.
// store may be nil.
func Preflight(ctx context.Context, store Store, log zerolog.Logger, filePath string) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	rec, assigned, err := loadRecord(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight load: %w", err)
	}

	pf := &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		Record:        rec,
		AssignedID:    assigned,
		ExportBatchID: uuid.New(),
	}

	if store != nil {
		fp, ok, err := store.Fingerprint(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("preflight lookup: %w", err)
		}
		pf.Stored, pf.StoredFingerprint = ok, fp
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Str("case_id", rec.ID).
		Bool("assigned_id", assigned).
		Int("diagnoses", len(rec.DiagnosisCodes)).
		Bool("stored", pf.Stored).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return pf, nil
}

// loadRecord decodes the file and reports whether Decode had to assign an ID.
func loadRecord(path string) (*model.CaseRecord, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read case record: %w", err)
	}
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, fmt.Errorf("decode case record: %w", err)
	}
	rec, err := record.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return rec, probe.ID == "", nil
}
