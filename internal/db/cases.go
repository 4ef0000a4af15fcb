package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
	embedsql "github.com/danstonedev/VSPx-EMRsim-sub000/internal/sql"
)

// ErrCaseNotFound is returned when no stored case has the requested ID.
var ErrCaseNotFound = errors.New("case not found")

// StoredCase is the listing view of a persisted case.
type StoredCase struct {
	ID          string
	Title       string
	Fingerprint string
	Diagnoses   int
	UpdatedAt   time.Time
}

// CaseStore persists case records as JSONB documents in chart.cases.
type CaseStore struct {
	pool *pgxpool.Pool
}

// NewCaseStore returns a store backed by pool.
func NewCaseStore(pool *pgxpool.Pool) *CaseStore {
	return &CaseStore{pool: pool}
}

// Save upserts rec under its ID. sourcePath may be empty. It reports whether
// the row was newly inserted.
func (s *CaseStore) Save(ctx context.Context, rec *model.CaseRecord, fingerprint, sourcePath string) (bool, error) {
	if rec.ID == "" {
		return false, fmt.Errorf("save case: record has no id")
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("encode case %s: %w", rec.ID, err)
	}
	var src *string
	if sourcePath != "" {
		src = &sourcePath
	}
	var inserted bool
	err = s.pool.QueryRow(ctx, embedsql.UpsertCase,
		rec.ID, rec.Title, fingerprint, src, doc,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert case %s: %w", rec.ID, err)
	}
	return inserted, nil
}

// Load returns the stored record and its fingerprint.
func (s *CaseStore) Load(ctx context.Context, id string) (*model.CaseRecord, string, error) {
	var (
		doc         []byte
		fingerprint string
	)
	err := s.pool.QueryRow(ctx, embedsql.GetCase, id).Scan(&doc, &fingerprint)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("load case %s: %w", id, ErrCaseNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("load case %s: %w", id, err)
	}
	rec, err := record.Decode(doc)
	if err != nil {
		return nil, "", fmt.Errorf("load case %s: %w", id, err)
	}
	return rec, fingerprint, nil
}

// Fingerprint returns the stored fingerprint for id, or ok=false when the
// case has never been saved.
func (s *CaseStore) Fingerprint(ctx context.Context, id string) (fingerprint string, ok bool, err error) {
	err = s.pool.QueryRow(ctx, embedsql.CaseFingerprint, id).Scan(&fingerprint)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup fingerprint %s: %w", id, err)
	}
	return fingerprint, true, nil
}

// List returns every stored case, most recently updated first.
func (s *CaseStore) List(ctx context.Context) ([]StoredCase, error) {
	rows, err := s.pool.Query(ctx, embedsql.ListCases)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	cases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (StoredCase, error) {
		var c StoredCase
		err := row.Scan(&c.ID, &c.Title, &c.Fingerprint, &c.UpdatedAt, &c.Diagnoses)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return cases, nil
}

// ReplaceBillingLines loads lines for caseID under batchID and removes every
// line from earlier batches, in one transaction. Each line is stamped with
// batchID. The case must already be saved.
func (s *CaseStore) ReplaceBillingLines(ctx context.Context, caseID string, batchID uuid.UUID, lines []model.BillingLine) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, embedsql.DeleteBillingLines, caseID, batchID); err != nil {
		return 0, fmt.Errorf("delete previous lines: %w", err)
	}

	ch := make(chan *model.BillingLine, 64)
	go func() {
		defer close(ch)
		for _, line := range lines {
			line.ExportBatchID = batchID.String()
			select {
			case ch <- &line:
			case <-ctx.Done():
				return
			}
		}
	}()

	n, err := CopyBillingLines(ctx, tx, ch)
	if err != nil {
		// Drain so the producer can exit.
		for range ch {
		}
		return 0, fmt.Errorf("copy billing lines: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// CountBillingLines returns the number of stored lines for caseID.
func (s *CaseStore) CountBillingLines(ctx context.Context, caseID string) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, embedsql.CountBillingLines, caseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count billing lines: %w", err)
	}
	return n, nil
}

// Analyze refreshes planner statistics for the billing lines table.
func (s *CaseStore) Analyze(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, embedsql.AnalyzeBillingLines); err != nil {
		return fmt.Errorf("analyze billing lines: %w", err)
	}
	return nil
}
