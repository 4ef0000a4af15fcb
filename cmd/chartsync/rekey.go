package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
)

var rekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Copy legacy bare assessment keys into the active regions' namespaces",
	Long: "Values stored under un-namespaced keys are copied to region:key for every active " +
		"region that defines the key and has no value of its own. Bare keys are left in place.",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		n := s.MigrateLegacyKeys()
		saveSession(log, s)
		fmt.Printf("Migrated %d legacy keys\n", n)
	},
}

func init() {
	requireFile(rekeyCmd)
	rootCmd.AddCommand(rekeyCmd)
}
