package linkage

import (
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// Result reports what a record-level synchronization changed.
type Result struct {
	PrimaryFixed    bool
	BillingRelinked int
	OrdersRelinked  int
}

// Changed reports whether the record needs to be persisted.
func (r Result) Changed() bool {
	return r.PrimaryFixed || r.BillingRelinked > 0 || r.OrdersRelinked > 0
}

// Synchronizer applies diagnosis list mutations to a case record and keeps
// both dependent collections linked to live diagnoses.
type Synchronizer struct {
	rec *model.CaseRecord
}

// For returns a Synchronizer bound to rec.
func For(rec *model.CaseRecord) *Synchronizer {
	return &Synchronizer{rec: rec}
}

// Sync re-derives primary flags from position and relinks stale items.
func (s *Synchronizer) Sync() Result {
	r := Result{PrimaryFixed: ReapplyPrimary(s.rec.DiagnosisCodes)}
	list := s.rec.DiagnosisCodes
	r.BillingRelinked = len(StaleLinks(s.rec.BillingCodes, list))
	r.OrdersRelinked = len(StaleLinks(s.rec.OrdersReferrals, list))
	SyncLinks(s.rec.BillingCodes, list)
	SyncLinks(s.rec.OrdersReferrals, list)
	return r
}

// Add appends a diagnosis. Only the list changes; no dependent item can
// become stale by an append.
func (s *Synchronizer) Add(entry model.DiagnosisEntry) (bool, error) {
	if err := AddDiagnosis(&s.rec.DiagnosisCodes, entry); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the diagnosis at index and relinks its items to the new
// primary. Items are never deleted.
func (s *Synchronizer) Remove(index int) (bool, error) {
	changed, err := RemoveDiagnosis(&s.rec.DiagnosisCodes, index)
	if err != nil || !changed {
		return false, err
	}
	s.Sync()
	return true, nil
}

// Move reorders the diagnosis at index by one position.
func (s *Synchronizer) Move(index, direction int) (bool, error) {
	changed, err := MoveDiagnosis(s.rec.DiagnosisCodes, index, direction)
	if err != nil || !changed {
		return false, err
	}
	s.Sync()
	return true, nil
}

// Replace overwrites the diagnosis at index. Items linked to the old code
// follow it to the new code.
func (s *Synchronizer) Replace(index int, entry model.DiagnosisEntry) (bool, error) {
	var old string
	if index >= 0 && index < len(s.rec.DiagnosisCodes) {
		old = s.rec.DiagnosisCodes[index].Key()
	}
	changed, err := ReplaceDiagnosis(s.rec.DiagnosisCodes, index, entry)
	if err != nil || !changed {
		return false, err
	}
	code := s.rec.DiagnosisCodes[index].Key()
	Relink(s.rec.BillingCodes, old, code)
	Relink(s.rec.OrdersReferrals, old, code)
	s.Sync()
	return true, nil
}

// NewBillingCode appends entry, linking it to the primary diagnosis unless it
// already names a live one, and returns its index.
func (s *Synchronizer) NewBillingCode(entry model.BillingCodeEntry) int {
	if entry.LinkedDiagnosis() == "" || !s.rec.DiagnosisCodes.Contains(entry.LinkedDiagnosisCode) {
		entry.LinkedDiagnosisCode = PrimaryCode(s.rec.DiagnosisCodes)
	}
	s.rec.BillingCodes = append(s.rec.BillingCodes, entry)
	return len(s.rec.BillingCodes) - 1
}

// NewOrderReferral is NewBillingCode for orders and referrals.
func (s *Synchronizer) NewOrderReferral(entry model.OrderReferralEntry) int {
	if entry.LinkedDiagnosis() == "" || !s.rec.DiagnosisCodes.Contains(entry.LinkedDiagnosisCode) {
		entry.LinkedDiagnosisCode = PrimaryCode(s.rec.DiagnosisCodes)
	}
	s.rec.OrdersReferrals = append(s.rec.OrdersReferrals, entry)
	return len(s.rec.OrdersReferrals) - 1
}
