package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/chart"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

// openSession loads cfg.FilePath into an editing session. Failures exit.
func openSession(log zerolog.Logger) *chart.Session {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		log.Error().Err(err).Msg("catalog load failed")
		os.Exit(exitcode.ValidationError)
	}
	rec, err := record.Load(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("record load failed")
		os.Exit(exitcode.ValidationError)
	}
	return chart.Open(rec, cat, log, chart.Options{MaterializeDefaults: cfg.MaterializeDefaults})
}

// saveSession writes the record back when the session has unsaved changes.
func saveSession(log zerolog.Logger, s *chart.Session) {
	if !s.Dirty() {
		log.Info().Msg("no changes to save")
		return
	}
	if err := record.Save(cfg.FilePath, s.Record()); err != nil {
		log.Error().Err(err).Msg("record save failed")
		os.Exit(exitcode.PersistError)
	}
	s.MarkSaved()
	log.Info().Str("file", cfg.FilePath).Msg("record saved")
}

// exitOnEditError maps an editing error to a process exit.
func exitOnEditError(log zerolog.Logger, err error) {
	if err == nil {
		return
	}
	var op string
	var oe *chart.OpError
	if errors.As(err, &oe) {
		op = oe.Op
	}
	log.Error().Err(err).Str("op", op).Msg("edit rejected")
	os.Exit(exitcode.ValidationError)
}

// requireFile registers the --file flag on cmd.
func requireFile(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to case record JSON (required)")
	_ = cmd.MarkFlagRequired("file")
}
