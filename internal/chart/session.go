// Package chart is the editing session around one case record: every user
// edit enters here, is applied by the linkage and assessment packages, and
// reports whether the record now needs saving.
package chart

import (
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/assessment"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/linkage"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/normalize"
)

// Options tune a Session.
type Options struct {
	// MaterializeDefaults keeps one editable billing and order row per
	// diagnosis after every diagnosis edit.
	MaterializeDefaults bool
}

// Session owns one open case record. It is not safe for concurrent use; a
// record has a single editor.
type Session struct {
	rec   *model.CaseRecord
	cat   catalog.Catalog
	log   zerolog.Logger
	opts  Options
	sync  *linkage.Synchronizer
	store *assessment.Store
	dirty bool
}

// Open starts a session on rec. Persisted primary flags are not trusted: they
// are re-derived from position, and stale links are repaired before the
// first edit.
func Open(rec *model.CaseRecord, cat catalog.Catalog, log zerolog.Logger, opts Options) *Session {
	s := &Session{
		rec:   rec,
		cat:   cat,
		log:   log.With().Str("case_id", rec.ID).Logger(),
		opts:  opts,
		sync:  linkage.For(rec),
		store: assessment.NewStore(&rec.Assessment, cat),
	}
	cleaned := normalize.Record(rec)
	r := s.sync.Sync()
	changed := s.afterDiagnosisEdit() || cleaned || r.Changed()
	s.mark(changed)
	s.log.Debug().
		Bool("cleaned", cleaned).
		Bool("primary_fixed", r.PrimaryFixed).
		Int("billing_relinked", r.BillingRelinked).
		Int("orders_relinked", r.OrdersRelinked).
		Msg("session opened")
	return s
}

// Record returns the record being edited.
func (s *Session) Record() *model.CaseRecord { return s.rec }

// Catalog returns the region catalog the session validates against.
func (s *Session) Catalog() catalog.Catalog { return s.cat }

// Dirty reports whether any edit since the last MarkSaved changed the record.
func (s *Session) Dirty() bool { return s.dirty }

// MarkSaved clears the dirty flag after the caller persisted the record.
func (s *Session) MarkSaved() { s.dirty = false }

func (s *Session) mark(changed bool) bool {
	if changed {
		s.dirty = true
	}
	return changed
}

func (s *Session) afterDiagnosisEdit() bool {
	if !s.opts.MaterializeDefaults {
		return false
	}
	b, o := grouping.MaterializeDefaults(s.rec)
	if b+o > 0 {
		s.log.Debug().Int("billing", b).Int("orders", o).Msg("default rows materialized")
	}
	return b+o > 0
}

// AddDiagnosis appends a diagnosis selected from search.
func (s *Session) AddDiagnosis(entry model.DiagnosisEntry) (bool, error) {
	entry.Description = normalize.Label(entry.Description)
	entry.Label = normalize.Label(entry.Label)
	changed, err := s.sync.Add(entry)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "add_diagnosis").Str("code", entry.Code).Msg("diagnosis rejected")
		return false, opErr("add diagnosis", err)
	}
	s.afterDiagnosisEdit()
	s.log.Info().Str("op", "add_diagnosis").Str("code", normalize.Code(entry.Code)).Msg("diagnosis added")
	return s.mark(changed), nil
}

// RemoveDiagnosis deletes the diagnosis at index; its items move to the new primary.
func (s *Session) RemoveDiagnosis(index int) (bool, error) {
	var code string
	if index >= 0 && index < len(s.rec.DiagnosisCodes) {
		code = s.rec.DiagnosisCodes[index].Key()
	}
	changed, err := s.sync.Remove(index)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "remove_diagnosis").Int("index", index).Msg("remove ignored")
		return false, opErr("remove diagnosis", err)
	}
	s.afterDiagnosisEdit()
	s.log.Info().Str("op", "remove_diagnosis").Int("index", index).Str("code", code).
		Str("primary", linkage.PrimaryCode(s.rec.DiagnosisCodes)).Msg("diagnosis removed")
	return s.mark(changed), nil
}

// MoveDiagnosis moves the diagnosis at index one step in direction (-1 or +1).
func (s *Session) MoveDiagnosis(index, direction int) (bool, error) {
	changed, err := s.sync.Move(index, direction)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "move_diagnosis").Int("index", index).Int("direction", direction).Msg("move ignored")
		return false, opErr("move diagnosis", err)
	}
	s.log.Info().Str("op", "move_diagnosis").Int("index", index).Int("direction", direction).
		Bool("changed", changed).Str("primary", linkage.PrimaryCode(s.rec.DiagnosisCodes)).Msg("diagnosis moved")
	return s.mark(changed), nil
}

// ReplaceDiagnosis edits the diagnosis at index in place.
func (s *Session) ReplaceDiagnosis(index int, entry model.DiagnosisEntry) (bool, error) {
	entry.Description = normalize.Label(entry.Description)
	entry.Label = normalize.Label(entry.Label)
	changed, err := s.sync.Replace(index, entry)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "replace_diagnosis").Int("index", index).Msg("replace rejected")
		return false, opErr("replace diagnosis", err)
	}
	if changed {
		s.afterDiagnosisEdit()
	}
	s.log.Info().Str("op", "replace_diagnosis").Int("index", index).Bool("changed", changed).Msg("diagnosis replaced")
	return s.mark(changed), nil
}

// AddBillingCode appends a billing line linked to the primary diagnosis
// unless it names another live one.
func (s *Session) AddBillingCode(entry model.BillingCodeEntry) int {
	i := s.sync.NewBillingCode(entry)
	s.mark(true)
	s.log.Info().Str("op", "add_billing").Int("index", i).Str("linked", s.rec.BillingCodes[i].LinkedDiagnosisCode).Msg("billing code added")
	return i
}

// AddOrderReferral appends an order or referral linked like AddBillingCode.
func (s *Session) AddOrderReferral(entry model.OrderReferralEntry) int {
	i := s.sync.NewOrderReferral(entry)
	s.mark(true)
	s.log.Info().Str("op", "add_order").Int("index", i).Str("linked", s.rec.OrdersReferrals[i].LinkedDiagnosisCode).Msg("order/referral added")
	return i
}

// Sync re-runs link repair; safe to call at any time.
func (s *Session) Sync() linkage.Result {
	r := s.sync.Sync()
	s.mark(r.Changed())
	return r
}

// MaterializeDefaults appends missing default rows regardless of Options.
func (s *Session) MaterializeDefaults() (billing, orders int) {
	billing, orders = grouping.MaterializeDefaults(s.rec)
	s.mark(billing+orders > 0)
	return billing, orders
}

// BillingGroups groups billing lines by diagnosis for display.
func (s *Session) BillingGroups() []model.DiagnosisGroup {
	return grouping.BuildDiagnosisGroups(s.rec.DiagnosisCodes, s.rec.BillingCodes, grouping.BillingLink)
}

// OrderGroups groups orders/referrals by diagnosis for display.
func (s *Session) OrderGroups() []model.DiagnosisGroup {
	return grouping.BuildDiagnosisGroups(s.rec.DiagnosisCodes, s.rec.OrdersReferrals, grouping.OrderLink)
}
