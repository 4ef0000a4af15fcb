package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/db"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

var caseID string

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List stored cases",
	RunE:  runCases,
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Write a stored case to --file",
	RunE:  runPull,
}

func init() {
	rootCmd.AddCommand(casesCmd)

	pullCmd.Flags().StringVar(&caseID, "case", "", "Stored case ID (required)")
	pullCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Destination path for the case record JSON (required)")
	_ = pullCmd.MarkFlagRequired("case")
	_ = pullCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(pullCmd)
}

func openStore(ctx context.Context) (*db.CaseStore, func()) {
	log := logging.Setup(cfg.LogFormat)
	if cfg.DSN == "" {
		log.Error().Msg("--dsn or CHARTSYNC_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	return db.NewCaseStore(pool), pool.Close
}

func runCases(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	store, closeFn := openStore(ctx)
	defer closeFn()

	cases, err := store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list cases failed")
		os.Exit(exitcode.PersistError)
	}
	for _, c := range cases {
		fmt.Printf("%-36s %3d dx  %s  %s\n", c.ID, c.Diagnoses, c.UpdatedAt.Format(time.RFC3339), c.Title)
	}
	return nil
}

func runPull(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	store, closeFn := openStore(ctx)
	defer closeFn()

	rec, fp, err := store.Load(ctx, caseID)
	if errors.Is(err, db.ErrCaseNotFound) {
		log.Error().Str("case", caseID).Msg("case not found")
		os.Exit(exitcode.ValidationError)
	}
	if err != nil {
		log.Error().Err(err).Msg("load case failed")
		os.Exit(exitcode.PersistError)
	}
	if err := record.Save(cfg.FilePath, rec); err != nil {
		log.Error().Err(err).Msg("record save failed")
		os.Exit(exitcode.PersistError)
	}
	log.Info().Str("case", caseID).Str("fingerprint", fp).Str("file", cfg.FilePath).Msg("case pulled")
	return nil
}
