package chart

import (
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/grouping"
)

// SelectRegion activates a region for assessment.
func (s *Session) SelectRegion(region string) (bool, error) {
	changed, err := s.store.SelectRegion(region)
	if err != nil {
		return false, opErr("select region", err)
	}
	s.log.Info().Str("op", "select_region").Str("region", region).Bool("changed", changed).Msg("region selected")
	return s.mark(changed), nil
}

// DeselectRegion hides a region. Its measurements are kept.
func (s *Session) DeselectRegion(region string) bool {
	changed := s.store.DeselectRegion(region)
	s.log.Info().Str("op", "deselect_region").Str("region", region).Bool("changed", changed).Msg("region deselected")
	return s.mark(changed)
}

// ToggleRegion flips a region's selection and reports whether it is now active.
func (s *Session) ToggleRegion(region string) (bool, error) {
	active, err := s.store.ToggleRegion(region)
	if err != nil {
		return false, opErr("toggle region", err)
	}
	s.mark(true)
	s.log.Info().Str("op", "toggle_region").Str("region", region).Bool("active", active).Msg("region toggled")
	return active, nil
}

// SetMeasurement records a value for (table, region, base key).
func (s *Session) SetMeasurement(table, region, base, value string) (bool, error) {
	changed, err := s.store.Set(table, region, base, value)
	if err != nil {
		return false, opErr("set measurement", err)
	}
	s.log.Debug().Str("op", "set_measurement").Str("table", table).Str("region", region).
		Str("key", base).Bool("changed", changed).Msg("measurement set")
	return s.mark(changed), nil
}

// Measurement reads a value for (table, region, base key), falling back to
// legacy un-namespaced data.
func (s *Session) Measurement(table, region, base string) (string, bool, error) {
	v, ok, err := s.store.Get(table, region, base)
	return v, ok, opErr("get measurement", err)
}

// MigrateLegacyKeys namespaces bare values visible to the active regions.
func (s *Session) MigrateLegacyKeys() int {
	n := s.store.MigrateLegacy()
	s.log.Info().Str("op", "migrate_legacy").Int("keys", n).Msg("legacy keys migrated")
	s.mark(n > 0)
	return n
}

// AssessmentRows lists the rows the active regions require.
func (s *Session) AssessmentRows() []grouping.AssessmentRow {
	return grouping.AssessmentRows(&s.rec.Assessment, s.cat)
}
