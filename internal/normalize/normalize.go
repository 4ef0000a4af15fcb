package normalize

import (
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// Record tidies free text that arrived from search boxes: diagnosis codes and
// link references are trimmed, labels and descriptions have whitespace
// collapsed. It reports whether anything changed. Primary flags and link
// validity are left to the linkage package.
func Record(rec *model.CaseRecord) bool {
	changed := false
	set := func(dst *string, v string) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}
	for i := range rec.DiagnosisCodes {
		e := &rec.DiagnosisCodes[i]
		set(&e.Code, Code(e.Code))
		set(&e.Description, Label(e.Description))
		set(&e.Label, Label(e.Label))
	}
	for i := range rec.BillingCodes {
		b := &rec.BillingCodes[i]
		set(&b.Code, Code(b.Code))
		set(&b.LinkedDiagnosisCode, Code(b.LinkedDiagnosisCode))
	}
	for i := range rec.OrdersReferrals {
		o := &rec.OrdersReferrals[i]
		set(&o.LinkedDiagnosisCode, Code(o.LinkedDiagnosisCode))
	}
	return changed
}
