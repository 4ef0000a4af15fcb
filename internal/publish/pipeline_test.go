package publish

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/config"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

// staleCase has no id, no primary flag and a billing code linked to a
// diagnosis that is not on the list.
const staleCase = `{
  "title": "Knee and back",
  "diagnosisCodes": [
    {"code": "M54.5", "description": "Low back pain"},
    {"code": "M25.561", "description": "Pain in right knee"}
  ],
  "billingCodes": [
    {"code": "97110", "units": "2", "linkedDiagnosisCode": "M99.9"}
  ],
  "assessment": {
    "selectedRegions": ["knee"],
    "rom": {"Flexion_R": "120"}
  }
}
`

type fakeStore struct {
	fingerprints map[string]string
	lines        map[string][]model.BillingLine
	saves        int
	analyzed     int
	saveErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		fingerprints: make(map[string]string),
		lines:        make(map[string][]model.BillingLine),
	}
}

func (f *fakeStore) Fingerprint(_ context.Context, id string) (string, bool, error) {
	fp, ok := f.fingerprints[id]
	return fp, ok, nil
}

func (f *fakeStore) Save(_ context.Context, rec *model.CaseRecord, fingerprint, _ string) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	_, existed := f.fingerprints[rec.ID]
	f.fingerprints[rec.ID] = fingerprint
	f.saves++
	return !existed, nil
}

func (f *fakeStore) ReplaceBillingLines(_ context.Context, caseID string, _ uuid.UUID, lines []model.BillingLine) (int64, error) {
	f.lines[caseID] = lines
	return int64(len(lines)), nil
}

func (f *fakeStore) Analyze(context.Context) error {
	f.analyzed++
	return nil
}

func writeCase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.json")
	if err := os.WriteFile(path, []byte(staleCase), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRun_FileOnly(t *testing.T) {
	path := writeCase(t)
	cfg := &config.Config{FilePath: path}

	summary, err := Run(context.Background(), nil, zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.WroteFile || !summary.Sync.Changed {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Sync.BillingRelinked != 1 || !summary.Sync.PrimaryFlagsFixed {
		t.Errorf("sync summary = %+v", summary.Sync)
	}

	rec, err := record.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.ID == "" || rec.ID != summary.CaseID {
		t.Errorf("assigned id not written: %q vs %q", rec.ID, summary.CaseID)
	}
	if !rec.DiagnosisCodes[0].IsPrimary || rec.DiagnosisCodes[1].IsPrimary {
		t.Errorf("primary flags = %+v", rec.DiagnosisCodes)
	}
	if rec.BillingCodes[0].LinkedDiagnosisCode != "M54.5" {
		t.Errorf("link = %q, want M54.5", rec.BillingCodes[0].LinkedDiagnosisCode)
	}
	if rec.Assessment.ROM["Flexion_R"] != "120" {
		t.Error("legacy key should survive without migration")
	}
}

func TestRun_DryRunLeavesFile(t *testing.T) {
	path := writeCase(t)
	cfg := &config.Config{FilePath: path, DryRun: true}

	summary, err := Run(context.Background(), nil, zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.WroteFile {
		t.Error("dry run wrote the file")
	}
	data, _ := os.ReadFile(path)
	if !bytes.Equal(data, []byte(staleCase)) {
		t.Error("file changed during dry run")
	}
}

func TestRun_PersistsThenSkipsUnchanged(t *testing.T) {
	path := writeCase(t)
	store := newFakeStore()
	cfg := &config.Config{FilePath: path, MaterializeDefaults: true, MigrateLegacyKeys: true}
	ctx := context.Background()

	first, err := Run(ctx, store, zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if !first.Inserted || first.AlreadyStored {
		t.Errorf("first summary = %+v", first)
	}
	// Two billing rows (one materialized) and one order row per diagnosis.
	if first.LinesStaged != 4 {
		t.Errorf("LinesStaged = %d, want 4", first.LinesStaged)
	}
	if store.analyzed != 1 {
		t.Errorf("analyzed = %d", store.analyzed)
	}
	if first.Sync.LegacyKeysMigrated != 1 {
		t.Errorf("LegacyKeysMigrated = %d, want 1", first.Sync.LegacyKeysMigrated)
	}

	second, err := Run(ctx, store, zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !second.AlreadyStored || second.WroteFile || second.Sync.Changed {
		t.Errorf("second summary = %+v", second)
	}
	if second.CaseID != first.CaseID {
		t.Errorf("case id changed: %q -> %q", first.CaseID, second.CaseID)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}

	cfg.Force = true
	if _, err := Run(ctx, store, zerolog.Nop(), cfg); err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("saves = %d, want 2 after --force", store.saves)
	}
}

func TestRun_ErrorPhases(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, nil, zerolog.Nop(), &config.Config{FilePath: filepath.Join(t.TempDir(), "missing.json")})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Phase != "preflight" {
		t.Errorf("missing file: %v", err)
	}

	store := newFakeStore()
	store.saveErr = errors.New("boom")
	_, err = Run(ctx, store, zerolog.Nop(), &config.Config{FilePath: writeCase(t)})
	if !errors.As(err, &pe) || pe.Phase != "persist" {
		t.Errorf("save failure: %v", err)
	}
	if !errors.Is(err, store.saveErr) {
		t.Error("PipelineError should unwrap to the store error")
	}
}
