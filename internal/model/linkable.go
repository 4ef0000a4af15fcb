package model

import "strings"

// Linkable is implemented by records that reference one diagnosis by code.
type Linkable interface {
	// LinkedDiagnosis returns the linked code trimmed, for matching.
	LinkedDiagnosis() string
	// StoredLinkedDiagnosis returns the linked code exactly as stored.
	StoredLinkedDiagnosis() string
	SetLinkedDiagnosis(code string)
}

// BillingCodeEntry is one billable procedure line (CPT/HCPCS) on a case.
type BillingCodeEntry struct {
	Code                string `json:"code"`
	Description         string `json:"description,omitempty"`
	Units               string `json:"units,omitempty"`
	Modifier            string `json:"modifier,omitempty"`
	LinkedDiagnosisCode string `json:"linkedDiagnosisCode"`
}

func (b *BillingCodeEntry) LinkedDiagnosis() string { return strings.TrimSpace(b.LinkedDiagnosisCode) }

func (b *BillingCodeEntry) StoredLinkedDiagnosis() string { return b.LinkedDiagnosisCode }

func (b *BillingCodeEntry) SetLinkedDiagnosis(code string) { b.LinkedDiagnosisCode = code }

// IsBlank reports whether the user has not filled in anything yet.
func (b *BillingCodeEntry) IsBlank() bool {
	return strings.TrimSpace(b.Code) == "" && strings.TrimSpace(b.Description) == "" &&
		strings.TrimSpace(b.Units) == "" && strings.TrimSpace(b.Modifier) == ""
}

// OrderReferralEntry is one order or referral on a case.
type OrderReferralEntry struct {
	Type                string `json:"type,omitempty"` // "order" or "referral"
	Details             string `json:"details,omitempty"`
	Recipient           string `json:"recipient,omitempty"`
	Notes               string `json:"notes,omitempty"`
	LinkedDiagnosisCode string `json:"linkedDiagnosisCode"`
}

func (o *OrderReferralEntry) LinkedDiagnosis() string {
	return strings.TrimSpace(o.LinkedDiagnosisCode)
}

func (o *OrderReferralEntry) StoredLinkedDiagnosis() string { return o.LinkedDiagnosisCode }

func (o *OrderReferralEntry) SetLinkedDiagnosis(code string) { o.LinkedDiagnosisCode = code }

// IsBlank reports whether the user has not filled in anything yet.
func (o *OrderReferralEntry) IsBlank() bool {
	return strings.TrimSpace(o.Type) == "" && strings.TrimSpace(o.Details) == "" &&
		strings.TrimSpace(o.Recipient) == "" && strings.TrimSpace(o.Notes) == ""
}

var (
	_ Linkable = (*BillingCodeEntry)(nil)
	_ Linkable = (*OrderReferralEntry)(nil)
)
