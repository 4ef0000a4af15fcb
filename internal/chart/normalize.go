package chart

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/assessment"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/linkage"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/normalize"
)

// NormalizeOptions selects the optional phases of Normalize.
type NormalizeOptions struct {
	MaterializeDefaults bool
	MigrateLegacyKeys   bool
}

// Normalize runs the load-time pipeline on rec in place: clean → relink →
// materialize → migrate legacy keys. The summary reports what changed.
func Normalize(rec *model.CaseRecord, cat catalog.Catalog, log zerolog.Logger, opts NormalizeOptions) (*model.SyncSummary, error) {
	start := time.Now()
	log = log.With().Str("case_id", rec.ID).Logger()

	before, err := normalize.Fingerprint(rec)
	if err != nil {
		return nil, opErr("fingerprint", err)
	}

	normalize.Record(rec)

	r := linkage.For(rec).Sync()
	log.Debug().
		Bool("primary_fixed", r.PrimaryFixed).
		Int("billing_relinked", r.BillingRelinked).
		Int("orders_relinked", r.OrdersRelinked).
		Msg("links synchronized")

	summary := &model.SyncSummary{
		CaseID:            rec.ID,
		FingerprintBefore: before,
		Diagnoses:         len(rec.DiagnosisCodes),
		PrimaryCode:       linkage.PrimaryCode(rec.DiagnosisCodes),
		PrimaryFlagsFixed: r.PrimaryFixed,
		BillingRelinked:   r.BillingRelinked,
		OrdersRelinked:    r.OrdersRelinked,
		ActiveRegions:     slices.Clone(rec.Assessment.SelectedRegions),
		SuspectDuplicates: suspectDuplicates(rec.DiagnosisCodes),
	}

	if opts.MaterializeDefaults {
		summary.BillingMaterialized, summary.OrdersMaterialized = grouping.MaterializeDefaults(rec)
	} else {
		summary.BillingMaterialized, summary.OrdersMaterialized = grouping.MissingDefaults(rec)
	}

	store := assessment.NewStore(&rec.Assessment, cat)
	for _, region := range rec.Assessment.SelectedRegions {
		if _, ok := cat.RegionByKey(region); !ok {
			log.Warn().Str("region", region).Msg("selected region not in catalog; its rows are hidden")
		}
	}
	if opts.MigrateLegacyKeys {
		summary.LegacyKeysMigrated = store.MigrateLegacy()
	} else {
		summary.LegacyKeysMigrated = len(store.LegacyCells())
	}

	summary.GroupsByDiagnosis = make(map[string]int)
	for _, g := range grouping.BuildDiagnosisGroups(rec.DiagnosisCodes, rec.BillingCodes, grouping.BillingLink) {
		summary.GroupsByDiagnosis[g.Key] += len(g.Indexes)
	}
	for _, g := range grouping.BuildDiagnosisGroups(rec.DiagnosisCodes, rec.OrdersReferrals, grouping.OrderLink) {
		summary.GroupsByDiagnosis[g.Key] += len(g.Indexes)
	}

	after, err := normalize.Fingerprint(rec)
	if err != nil {
		return nil, opErr("fingerprint", err)
	}
	summary.FingerprintAfter = after
	summary.Changed = before != after
	summary.Duration = time.Since(start)

	log.Info().
		Int("diagnoses", summary.Diagnoses).
		Str("primary", summary.PrimaryCode).
		Int("billing_relinked", summary.BillingRelinked).
		Int("orders_relinked", summary.OrdersRelinked).
		Int("billing_materialized", summary.BillingMaterialized).
		Int("orders_materialized", summary.OrdersMaterialized).
		Int("legacy_keys", summary.LegacyKeysMigrated).
		Bool("changed", summary.Changed).
		Dur("duration", summary.Duration).
		Msg("case normalized")

	return summary, nil
}

// Plan reports what Normalize would do without touching rec. Count fields
// describe pending work rather than work done.
func Plan(rec *model.CaseRecord, cat catalog.Catalog, log zerolog.Logger) (*model.SyncSummary, error) {
	return Normalize(rec.Clone(), cat, log, NormalizeOptions{})
}

// suspectDuplicates lists codes that repeat an earlier entry, exactly or up to
// case and punctuation ("M54.5" vs "m545").
func suspectDuplicates(list model.DiagnosisList) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, e := range list {
		k := normalize.CodeKey(e.Code)
		if k == "" {
			continue
		}
		if seen[k] {
			out = append(out, e.Key())
			continue
		}
		seen[k] = true
	}
	return out
}
