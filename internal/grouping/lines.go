package grouping

import "github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"

// Lines flattens rec's billing codes and orders/referrals into BillingLine
// rows, grouped by diagnosis in list order with unlinked items last.
func Lines(rec *model.CaseRecord, batchID string) []model.BillingLine {
	var out []model.BillingLine
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.BillingCodes, BillingLink) {
		for _, i := range g.Indexes {
			b := rec.BillingCodes[i]
			l := baseLine(rec, batchID, model.LineKindBilling, g, i)
			l.ItemCode = b.Code
			l.ItemDetail = b.Description
			l.Units = b.Units
			l.Modifier = b.Modifier
			out = append(out, l)
		}
	}
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.OrdersReferrals, OrderLink) {
		for _, i := range g.Indexes {
			o := rec.OrdersReferrals[i]
			l := baseLine(rec, batchID, model.LineKindOrder, g, i)
			l.ItemCode = o.Type
			l.ItemDetail = o.Details
			out = append(out, l)
		}
	}
	return out
}

func baseLine(rec *model.CaseRecord, batchID, kind string, g model.DiagnosisGroup, i int) model.BillingLine {
	l := model.BillingLine{
		ExportBatchID: batchID,
		CaseID:        rec.ID,
		Kind:          kind,
		DiagnosisRank: int32(g.Rank),
		ItemIndex:     int32(i),
	}
	if !g.Unlinked() {
		l.DiagnosisCode = g.Key
		l.DiagnosisLabel = g.Label
		l.Primary = g.Rank == 0
	}
	return l
}
