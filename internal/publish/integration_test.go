package publish_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/config"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/db"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/publish"
)

const (
	testPort     = 15434
	testDB       = "publishtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

const fixture = `{
  "id": "case-e2e",
  "title": "End to end",
  "diagnosisCodes": [
    {"code": "S83.511A", "description": "Sprain of ACL of right knee"},
    {"code": "M25.561", "description": "Pain in right knee", "isPrimary": true}
  ],
  "billingCodes": [
    {"code": "97110", "units": "3", "linkedDiagnosisCode": "S83.511A"},
    {"code": "97140", "units": "1", "linkedDiagnosisCode": "M25.561"},
    {"code": "97530", "units": "1", "linkedDiagnosisCode": "Z00.00"}
  ],
  "ordersReferrals": [
    {"type": "Imaging", "details": "MRI right knee", "linkedDiagnosisCode": ""}
  ],
  "assessment": {"selectedRegions": ["knee"]}
}
`

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
	if err := db.ApplyMigrations(ctx, pool, logging.Setup("text")); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestEndToEnd(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	path := filepath.Join(t.TempDir(), "case.json")
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := &config.Config{DSN: testDSN, FilePath: path, LogFormat: "text"}
	store := db.NewCaseStore(pool)

	summary, err := publish.Run(ctx, store, log, cfg)
	if err != nil {
		t.Fatalf("publish.Run: %v", err)
	}

	t.Run("summary_metrics", func(t *testing.T) {
		if !summary.Inserted {
			t.Error("expected insert")
		}
		if summary.LinesStaged != 4 {
			t.Errorf("LinesStaged = %d, want 4", summary.LinesStaged)
		}
		if summary.Sync.PrimaryCode != "S83.511A" {
			t.Errorf("PrimaryCode = %q", summary.Sync.PrimaryCode)
		}
		if summary.Sync.BillingRelinked != 1 || summary.Sync.OrdersRelinked != 1 {
			t.Errorf("relinked billing=%d orders=%d", summary.Sync.BillingRelinked, summary.Sync.OrdersRelinked)
		}
	})

	t.Run("lines_grouped_by_diagnosis", func(t *testing.T) {
		rows, err := pool.Query(ctx,
			`SELECT diagnosis_code, count(*) FROM chart.billing_lines
			 WHERE case_id = $1 AND kind = 'billing'
			 GROUP BY diagnosis_code ORDER BY diagnosis_code`, "case-e2e")
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		defer rows.Close()
		got := make(map[string]int)
		for rows.Next() {
			var code string
			var n int
			if err := rows.Scan(&code, &n); err != nil {
				t.Fatalf("scan: %v", err)
			}
			got[code] = n
		}
		if got["S83.511A"] != 2 || got["M25.561"] != 1 {
			t.Errorf("billing lines by diagnosis = %v", got)
		}
	})

	t.Run("primary_flag", func(t *testing.T) {
		var primaries int
		err := pool.QueryRow(ctx,
			"SELECT count(*) FROM chart.billing_lines WHERE case_id = $1 AND is_primary", "case-e2e").Scan(&primaries)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		// Two billing lines and the order line all hang off the primary.
		if primaries != 3 {
			t.Errorf("primary lines = %d, want 3", primaries)
		}
	})

	t.Run("stored_record_normalized", func(t *testing.T) {
		rec, fp, err := store.Load(ctx, "case-e2e")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if fp != summary.Sync.FingerprintAfter {
			t.Errorf("stored fingerprint %q != %q", fp, summary.Sync.FingerprintAfter)
		}
		if !rec.DiagnosisCodes[0].IsPrimary || rec.DiagnosisCodes[1].IsPrimary {
			t.Errorf("stored primary flags = %+v", rec.DiagnosisCodes)
		}
	})

	t.Run("republish_skipped", func(t *testing.T) {
		again, err := publish.Run(ctx, store, log, cfg)
		if err != nil {
			t.Fatalf("second Run: %v", err)
		}
		if !again.AlreadyStored {
			t.Error("unchanged case should be skipped")
		}
		n, err := store.CountBillingLines(ctx, "case-e2e")
		if err != nil {
			t.Fatalf("CountBillingLines: %v", err)
		}
		if n != 4 {
			t.Errorf("stored lines = %d, want 4", n)
		}
	})
}
