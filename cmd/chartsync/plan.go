package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/chart"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/linkage"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/normalize"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run report of what sync would change (no writes)",
	RunE:  runPlan,
}

func init() {
	requireFile(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
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

	stale := linkage.StaleLinks(rec.BillingCodes, rec.DiagnosisCodes)
	staleOrders := linkage.StaleLinks(rec.OrdersReferrals, rec.DiagnosisCodes)

	summary, err := chart.Plan(rec, cat, log)
	if err != nil {
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.SyncError)
	}

	fmt.Println("=== chartsync plan ===")
	fmt.Printf("File:        %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:     %s\n", sha)
	fmt.Printf("Case:        %s %s\n", rec.ID, rec.Title)
	fmt.Printf("Diagnoses:   %d (primary %q)\n", summary.Diagnoses, summary.PrimaryCode)
	fmt.Printf("Regions:     %v\n", summary.ActiveRegions)
	fmt.Println()

	fmt.Println("Items by diagnosis:")
	printGroups(rec.DiagnosisCodes, summary.GroupsByDiagnosis)
	fmt.Println()

	fmt.Printf("Primary flags to fix:    %v\n", summary.PrimaryFlagsFixed)
	fmt.Printf("Billing links to repair: %d %v\n", summary.BillingRelinked, stale)
	fmt.Printf("Order links to repair:   %d %v\n", summary.OrdersRelinked, staleOrders)
	fmt.Printf("Missing default rows:    %d billing, %d orders\n", summary.BillingMaterialized, summary.OrdersMaterialized)
	fmt.Printf("Legacy assessment keys:  %d\n", summary.LegacyKeysMigrated)
	if len(summary.SuspectDuplicates) > 0 {
		fmt.Printf("Suspect duplicates:      %v\n", summary.SuspectDuplicates)
	}
	if summary.Changed {
		fmt.Println("\nsync would modify this record")
	} else {
		fmt.Println("\nrecord is already normalized")
	}
	return nil
}

// printGroups prints per-diagnosis item counts in list order, unlinked last.
func printGroups(list model.DiagnosisList, counts map[string]int) {
	printed := make(map[string]bool)
	for i, e := range list {
		key := e.Key()
		if key == "" || printed[key] {
			continue
		}
		printed[key] = true
		marker := " "
		if list.IsPrimary(i) {
			marker = "*"
		}
		fmt.Printf("  %s %-10s %3d  %s\n", marker, key, counts[key], e.Display())
	}
	var rest []string
	for key := range counts {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Printf("    %-10s %3d\n", key, counts[key])
	}
}
