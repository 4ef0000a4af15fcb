package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/parquetio"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write billing and order lines grouped by diagnosis to Parquet",
	RunE:  runExport,
}

func init() {
	requireFile(exportCmd)
	exportCmd.Flags().StringVar(&cfg.OutPath, "out", "", "Output Parquet path (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	// The session repairs links in memory; the record file is not rewritten.
	s := openSession(log)
	batch := uuid.NewString()
	lines := grouping.Lines(s.Record(), batch)

	if err := parquetio.Write(cfg.OutPath, lines); err != nil {
		log.Error().Err(err).Msg("parquet export failed")
		os.Exit(exitcode.PersistError)
	}

	log.Info().
		Str("out", cfg.OutPath).
		Str("export_batch_id", batch).
		Int("lines", len(lines)).
		Msg("export complete")
	fmt.Printf("Exported %d lines to %s\n", len(lines), cfg.OutPath)
	return nil
}
