package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/db"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

const (
	testPort     = 15433
	testDB       = "chartdb"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("CHARTSYNC_SKIP_PG") != "" {
		fmt.Fprintln(os.Stderr, "SKIP: CHARTSYNC_SKIP_PG set")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	runtime, err := os.MkdirTemp("", "chartsync-pg-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create runtime dir: %v\n", err)
		os.Exit(1)
	}

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			RuntimePath(runtime).
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.RemoveAll(runtime)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.RemoveAll(runtime)
	os.Exit(code)
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS chart CASCADE"); err != nil {
		pool.Close()
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func sampleCase() *model.CaseRecord {
	return &model.CaseRecord{
		ID:    uuid.NewString(),
		Title: "Low back pain",
		DiagnosisCodes: model.DiagnosisList{
			{Code: "M54.5", Description: "Low back pain", IsPrimary: true},
			{Code: "M25.561", Description: "Pain in right knee"},
		},
		BillingCodes: []model.BillingCodeEntry{
			{Code: "97110", Units: "2", LinkedDiagnosisCode: "M54.5"},
		},
		Assessment: model.Assessment{
			SelectedRegions: []string{"knee"},
			ROM:             map[string]string{"knee:Flexion_R": "120"},
		},
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("second migration run should be idempotent: %v", err)
	}
	for _, tbl := range []string{"chart.cases", "chart.billing_lines"} {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema || '.' || table_name = $1)", tbl).
			Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", tbl, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migrations", tbl)
		}
	}
}

func TestCaseStore_SaveLoad(t *testing.T) {
	store := db.NewCaseStore(setupDB(t))
	ctx := context.Background()
	rec := sampleCase()

	inserted, err := store.Save(ctx, rec, "fp-1", "/tmp/case.json")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !inserted {
		t.Error("first save should insert")
	}

	got, fp, err := store.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fp != "fp-1" {
		t.Errorf("fingerprint = %q", fp)
	}
	if got.ID != rec.ID || len(got.DiagnosisCodes) != 2 || got.DiagnosisCodes[0].Code != "M54.5" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Assessment.ROM["knee:Flexion_R"] != "120" {
		t.Errorf("assessment lost: %+v", got.Assessment)
	}

	rec.Title = "Updated"
	inserted, err = store.Save(ctx, rec, "fp-2", "")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if inserted {
		t.Error("second save should update")
	}
	fp, ok, err := store.Fingerprint(ctx, rec.ID)
	if err != nil || !ok || fp != "fp-2" {
		t.Errorf("Fingerprint = %q, %v, %v", fp, ok, err)
	}

	cases, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cases) != 1 || cases[0].Title != "Updated" || cases[0].Diagnoses != 2 {
		t.Errorf("List = %+v", cases)
	}
}

func TestCaseStore_NotFound(t *testing.T) {
	store := db.NewCaseStore(setupDB(t))
	ctx := context.Background()

	_, _, err := store.Load(ctx, "missing")
	if !errors.Is(err, db.ErrCaseNotFound) {
		t.Errorf("Load missing: %v", err)
	}
	_, ok, err := store.Fingerprint(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Fingerprint missing = %v, %v", ok, err)
	}
}

func TestCaseStore_ReplaceBillingLines(t *testing.T) {
	pool := setupDB(t)
	store := db.NewCaseStore(pool)
	ctx := context.Background()
	rec := sampleCase()
	if _, err := store.Save(ctx, rec, "fp", ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	lines := []model.BillingLine{
		{CaseID: rec.ID, Kind: model.LineKindBilling, DiagnosisCode: "M54.5", DiagnosisRank: 0, Primary: true, ItemCode: "97110"},
		{CaseID: rec.ID, Kind: model.LineKindBilling, DiagnosisCode: "M54.5", DiagnosisRank: 0, Primary: true, ItemIndex: 1, ItemCode: "97140"},
		{CaseID: rec.ID, Kind: model.LineKindOrder, DiagnosisRank: -1, ItemIndex: 0, ItemCode: "Referral"},
	}
	n, err := store.ReplaceBillingLines(ctx, rec.ID, uuid.New(), lines)
	if err != nil {
		t.Fatalf("ReplaceBillingLines: %v", err)
	}
	if n != 3 {
		t.Errorf("copied %d, want 3", n)
	}

	n, err = store.ReplaceBillingLines(ctx, rec.ID, uuid.New(), lines[:1])
	if err != nil {
		t.Fatalf("second ReplaceBillingLines: %v", err)
	}
	if n != 1 {
		t.Errorf("copied %d, want 1", n)
	}
	count, err := store.CountBillingLines(ctx, rec.ID)
	if err != nil {
		t.Fatalf("CountBillingLines: %v", err)
	}
	if count != 1 {
		t.Errorf("stored lines = %d, want 1 after replace", count)
	}

	if err := store.Analyze(ctx); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var nullCodes int
	err = pool.QueryRow(ctx, "SELECT count(*) FROM chart.billing_lines WHERE diagnosis_code IS NULL").Scan(&nullCodes)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if nullCodes != 0 {
		t.Errorf("unexpected unlinked lines: %d", nullCodes)
	}
}
