package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
)

var regionKey string

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Select or deselect assessment regions",
}

var regionSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Activate --region for assessment",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		_, err := s.SelectRegion(regionKey)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

var regionDeselectCmd = &cobra.Command{
	Use:   "deselect",
	Short: "Hide --region; its recorded values are kept",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		s.DeselectRegion(regionKey)
		saveSession(log, s)
	},
}

var regionToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the selection of --region",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		active, err := s.ToggleRegion(regionKey)
		exitOnEditError(log, err)
		saveSession(log, s)
		fmt.Printf("%s active: %v\n", regionKey, active)
	},
}

var regionRowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "List the assessment rows the active regions require",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		for _, r := range s.AssessmentRows() {
			value := r.Value
			if r.FromLegacy {
				value += " (legacy)"
			}
			fmt.Printf("%-16s %-10s %-32s %s\n", r.RegionName, r.Table, r.Key, value)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{regionSelectCmd, regionDeselectCmd, regionToggleCmd} {
		requireFile(c)
		c.Flags().StringVar(&regionKey, "region", "", "Catalog region key, e.g. shoulder (required)")
		_ = c.MarkFlagRequired("region")
	}
	requireFile(regionRowsCmd)
	regionCmd.AddCommand(regionSelectCmd, regionDeselectCmd, regionToggleCmd, regionRowsCmd)
	rootCmd.AddCommand(regionCmd)
}
