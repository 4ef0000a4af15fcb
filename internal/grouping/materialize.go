package grouping

import "github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"

type linkable[T any] interface {
	*T
	model.Linkable
}

// MaterializeDefaultRow appends one factory-built item linked to group's
// diagnosis when no item in *items links to it yet. The live collection is
// checked rather than group.Indexes, so repeated calls with a stale group
// never add a second row. It reports whether it appended.
func MaterializeDefaultRow[T any, P linkable[T]](items *[]T, group model.DiagnosisGroup, factory func() T) bool {
	if group.Unlinked() || group.Key == "" {
		return false
	}
	for i := range *items {
		if P(&(*items)[i]).LinkedDiagnosis() == group.Key {
			return false
		}
	}
	item := factory()
	P(&item).SetLinkedDiagnosis(group.Key)
	*items = append(*items, item)
	return true
}

// MaterializeDefaults gives every diagnosis of rec at least one billing row
// and one order/referral row, returning how many of each were appended.
func MaterializeDefaults(rec *model.CaseRecord) (billing, orders int) {
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.BillingCodes, BillingLink) {
		if MaterializeDefaultRow(&rec.BillingCodes, g, newBillingCode) {
			billing++
		}
	}
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.OrdersReferrals, OrderLink) {
		if MaterializeDefaultRow(&rec.OrdersReferrals, g, newOrderReferral) {
			orders++
		}
	}
	return billing, orders
}

// MissingDefaults counts the rows MaterializeDefaults would append.
func MissingDefaults(rec *model.CaseRecord) (billing, orders int) {
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.BillingCodes, BillingLink) {
		if !g.Unlinked() && len(g.Indexes) == 0 {
			billing++
		}
	}
	for _, g := range BuildDiagnosisGroups(rec.DiagnosisCodes, rec.OrdersReferrals, OrderLink) {
		if !g.Unlinked() && len(g.Indexes) == 0 {
			orders++
		}
	}
	return billing, orders
}

func newBillingCode() model.BillingCodeEntry { return model.BillingCodeEntry{} }

func newOrderReferral() model.OrderReferralEntry { return model.OrderReferralEntry{} }
