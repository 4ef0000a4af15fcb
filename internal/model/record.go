package model

import (
	"maps"
	"slices"
)

// CaseRecord is the in-memory case document edited by one session.
type CaseRecord struct {
	ID              string               `json:"id,omitempty"`
	Title           string               `json:"title,omitempty"`
	DiagnosisCodes  DiagnosisList        `json:"diagnosisCodes"`
	BillingCodes    []BillingCodeEntry   `json:"billingCodes"`
	OrdersReferrals []OrderReferralEntry `json:"ordersReferrals"`
	Assessment      Assessment           `json:"assessment"`
}

// Assessment holds the flat, region-namespaced measurement maps.
type Assessment struct {
	SelectedRegions []string          `json:"selectedRegions"`
	ROM             map[string]string `json:"rom,omitempty"`
	Resisted        map[string]string `json:"resisted,omitempty"`
	Dermatomes      map[string]string `json:"dermatomes,omitempty"`
	Myotomes        map[string]string `json:"myotomes,omitempty"`
	Reflexes        map[string]string `json:"reflexes,omitempty"`
}

// TableMap returns a pointer to the map backing the named table, or nil for
// an unknown name. The map itself may still be nil.
func (a *Assessment) TableMap(name string) *map[string]string {
	switch name {
	case "rom":
		return &a.ROM
	case "resisted":
		return &a.Resisted
	case "dermatome":
		return &a.Dermatomes
	case "myotome":
		return &a.Myotomes
	case "reflex":
		return &a.Reflexes
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *CaseRecord) Clone() *CaseRecord {
	c := *r
	c.DiagnosisCodes = slices.Clone(r.DiagnosisCodes)
	c.BillingCodes = slices.Clone(r.BillingCodes)
	c.OrdersReferrals = slices.Clone(r.OrdersReferrals)
	c.Assessment = Assessment{
		SelectedRegions: slices.Clone(r.Assessment.SelectedRegions),
		ROM:             maps.Clone(r.Assessment.ROM),
		Resisted:        maps.Clone(r.Assessment.Resisted),
		Dermatomes:      maps.Clone(r.Assessment.Dermatomes),
		Myotomes:        maps.Clone(r.Assessment.Myotomes),
		Reflexes:        maps.Clone(r.Assessment.Reflexes),
	}
	return &c
}
