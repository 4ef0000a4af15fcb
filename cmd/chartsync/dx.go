package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

var dxFlags struct {
	entry     model.DiagnosisEntry
	index     int
	direction string
}

var dxCmd = &cobra.Command{
	Use:   "dx",
	Short: "Edit the diagnosis list of a case record",
}

var dxListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the diagnosis list in order; the first entry is primary",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		list := s.Record().DiagnosisCodes
		for i, e := range list {
			marker := " "
			if list.IsPrimary(i) {
				marker = "*"
			}
			fmt.Printf("%s %2d  %s\n", marker, i, e.Display())
		}
	},
}

var dxAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a diagnosis",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		_, err := s.AddDiagnosis(dxFlags.entry)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

var dxRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the diagnosis at --index and relink dependent items",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		_, err := s.RemoveDiagnosis(dxFlags.index)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

var dxMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the diagnosis at --index one position up or down",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		var dir int
		switch dxFlags.direction {
		case "up":
			dir = -1
		case "down":
			dir = 1
		default:
			log.Error().Str("direction", dxFlags.direction).Msg("--direction must be up or down")
			os.Exit(exitcode.UsageError)
		}
		s := openSession(log)
		_, err := s.MoveDiagnosis(dxFlags.index, dir)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

var dxReplaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace the diagnosis at --index, carrying its links to the new code",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		_, err := s.ReplaceDiagnosis(dxFlags.index, dxFlags.entry)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

func init() {
	requireFile(dxListCmd)

	for _, c := range []*cobra.Command{dxAddCmd, dxReplaceCmd} {
		requireFile(c)
		f := c.Flags()
		f.StringVar(&dxFlags.entry.Code, "code", "", "Diagnosis code, e.g. M54.5 (required)")
		f.StringVar(&dxFlags.entry.Description, "description", "", "Diagnosis description")
		f.StringVar(&dxFlags.entry.Label, "label", "", "Display label (defaults to code - description)")
		_ = c.MarkFlagRequired("code")
	}
	for _, c := range []*cobra.Command{dxRemoveCmd, dxMoveCmd, dxReplaceCmd} {
		if c != dxReplaceCmd {
			requireFile(c)
		}
		c.Flags().IntVar(&dxFlags.index, "index", 0, "Zero-based list position")
		_ = c.MarkFlagRequired("index")
	}
	dxMoveCmd.Flags().StringVar(&dxFlags.direction, "direction", "", "up or down (required)")
	_ = dxMoveCmd.MarkFlagRequired("direction")

	dxCmd.AddCommand(dxListCmd, dxAddCmd, dxRemoveCmd, dxMoveCmd, dxReplaceCmd)
	rootCmd.AddCommand(dxCmd)
}
