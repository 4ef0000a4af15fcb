// mkfixture writes a sample case record that exercises load-time repair: no
// primary flag, an orphaned billing link, a blank order link and un-namespaced
// assessment values.
// Usage: go run ./cmd/mkfixture --out testdata/case.json --diagnoses 3 --lines testdata/case-lines.parquet
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/linkage"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/parquetio"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

var diagnosisPool = []model.DiagnosisEntry{
	{Code: "M54.5", Description: "Low back pain"},
	{Code: "M25.561", Description: "Pain in right knee"},
	{Code: "M75.101", Description: "Rotator cuff tear, right shoulder"},
	{Code: "S83.511A", Description: "Sprain of ACL of right knee"},
	{Code: "M54.2", Description: "Cervicalgia"},
	{Code: "M76.61", Description: "Achilles tendinitis, right leg"},
}

var billingPool = []model.BillingCodeEntry{
	{Code: "97110", Description: "Therapeutic exercise", Units: "2"},
	{Code: "97140", Description: "Manual therapy", Units: "1"},
	{Code: "97530", Description: "Therapeutic activities", Units: "1"},
	{Code: "97161", Description: "PT evaluation, low complexity", Units: "1"},
}

func main() {
	out := flag.String("out", "testdata/case.json", "output case record")
	n := flag.Int("diagnoses", 3, "number of diagnoses")
	seed := flag.Int64("seed", 1, "random seed")
	linesOut := flag.String("lines", "", "also write the repaired billing lines to this Parquet file")
	flag.Parse()

	if *n < 1 || *n > len(diagnosisPool) {
		fmt.Fprintf(os.Stderr, "--diagnoses must be between 1 and %d\n", len(diagnosisPool))
		os.Exit(1)
	}
	rng := rand.New(rand.NewSource(*seed))

	rec := &model.CaseRecord{
		ID:    uuid.NewString(),
		Title: "Generated fixture",
	}
	for _, i := range rng.Perm(len(diagnosisPool))[:*n] {
		rec.DiagnosisCodes = append(rec.DiagnosisCodes, diagnosisPool[i])
	}
	// A stale primary flag on the last entry; position 0 is the real primary.
	rec.DiagnosisCodes[len(rec.DiagnosisCodes)-1].IsPrimary = true

	for i, b := range billingPool {
		b.LinkedDiagnosisCode = rec.DiagnosisCodes[i%len(rec.DiagnosisCodes)].Code
		rec.BillingCodes = append(rec.BillingCodes, b)
	}
	// Orphaned: points at a diagnosis that is not on the list.
	rec.BillingCodes[len(rec.BillingCodes)-1].LinkedDiagnosisCode = "Z99.89"
	rec.OrdersReferrals = []model.OrderReferralEntry{
		{Type: "Referral", Details: "Orthopedic consult", Recipient: "Ortho clinic"},
	}

	cat := catalog.Default()
	region, _ := cat.RegionByKey("shoulder")
	rec.Assessment.SelectedRegions = []string{"shoulder", "knee"}
	rec.Assessment.ROM = make(map[string]string)
	for _, bk := range region.BaseKeys("rom") {
		rec.Assessment.ROM[bk.Key] = fmt.Sprintf("%d", 90+rng.Intn(90))
	}
	rec.Assessment.Dermatomes = map[string]string{
		catalog.NeuroKey("C5", "L", "dermatome"):           "intact",
		"knee:" + catalog.NeuroKey("L3", "R", "dermatome"): "diminished",
	}

	if err := record.Save(*out, rec); err != nil {
		fmt.Fprintf(os.Stderr, "write record: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote case %s to %s\n", rec.ID, *out)
	fmt.Printf("  diagnoses:       %d\n", len(rec.DiagnosisCodes))
	fmt.Printf("  billing codes:   %d (1 orphaned)\n", len(rec.BillingCodes))
	fmt.Printf("  legacy rom keys: %d\n", len(rec.Assessment.ROM))

	if *linesOut == "" {
		return
	}
	repaired := rec.Clone()
	linkage.For(repaired).Sync()
	lines := grouping.Lines(repaired, uuid.NewString())
	if err := parquetio.Write(*linesOut, lines); err != nil {
		fmt.Fprintf(os.Stderr, "write lines: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d lines to %s\n", len(lines), *linesOut)
}
