package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/db"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/publish"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Normalize a case record and optionally publish it to the database",
	RunE:  runSync,
}

func init() {
	requireFile(syncCmd)
	f := syncCmd.Flags()
	f.BoolVar(&cfg.MaterializeDefaults, "materialize", false, "Add one blank billing and order row per diagnosis without items")
	f.BoolVar(&cfg.MigrateLegacyKeys, "migrate-legacy", false, "Copy bare assessment keys into region-namespaced keys")
	f.BoolVar(&cfg.Save, "save", false, "Persist the case and its billing lines to the database")
	f.BoolVar(&cfg.Force, "force", false, "Persist even if the stored fingerprint matches")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Do not write the record file back")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	validate := cfg.Validate
	if cfg.Save {
		validate = cfg.ValidateWithDSN
	}
	if err := validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var store publish.Store
	if cfg.Save {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		store = db.NewCaseStore(pool)
	}

	summary, err := publish.Run(ctx, store, log, &cfg)
	if err != nil {
		var pe *publish.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("sync failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "normalize":
				os.Exit(exitcode.SyncError)
			default:
				os.Exit(exitcode.PersistError)
			}
		}
		log.Error().Err(err).Msg("sync failed")
		os.Exit(exitcode.SyncError)
	}

	s := summary.Sync
	fmt.Printf("Sync complete: case %s, primary %q, %d billing + %d orders relinked, %d+%d default rows, %d legacy keys (%.3fs)\n",
		summary.CaseID, s.PrimaryCode, s.BillingRelinked, s.OrdersRelinked,
		s.BillingMaterialized, s.OrdersMaterialized, s.LegacyKeysMigrated,
		summary.DurationTotal.Seconds())
	switch {
	case summary.AlreadyStored:
		fmt.Println("Database: unchanged, skipped")
	case cfg.Save:
		fmt.Printf("Database: saved (inserted=%v), %d billing lines staged\n", summary.Inserted, summary.LinesStaged)
	}
	return nil
}
