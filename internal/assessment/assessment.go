package assessment

import (
	"fmt"
	"slices"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// Store edits the assessment of one case against a region catalog.
type Store struct {
	a   *model.Assessment
	cat catalog.Catalog
}

// NewStore binds a Store to a.
func NewStore(a *model.Assessment, cat catalog.Catalog) *Store {
	return &Store{a: a, cat: cat}
}

func (s *Store) table(name string) (*map[string]string, error) {
	m := s.a.TableMap(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return m, nil
}

// Get reads a measurement with legacy fallback.
func (s *Store) Get(table, region, base string) (string, bool, error) {
	m, err := s.table(table)
	if err != nil {
		return "", false, err
	}
	v, ok := Read(*m, region, base)
	return v, ok, nil
}

// Set writes a measurement under its namespaced key.
func (s *Store) Set(table, region, base, value string) (bool, error) {
	m, err := s.table(table)
	if err != nil {
		return false, err
	}
	k := Key{Region: region, Base: base}
	if err := k.Validate(); err != nil {
		return false, fmt.Errorf("%w: %q", err, k.String())
	}
	if _, ok := s.cat.RegionByKey(region); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if *m == nil {
		*m = make(map[string]string)
	}
	return Write(*m, region, base, value), nil
}

// ActiveRegions returns the selected regions in selection order.
func (s *Store) ActiveRegions() []string {
	return slices.Clone(s.a.SelectedRegions)
}

// IsActive reports whether region is selected.
func (s *Store) IsActive(region string) bool {
	return slices.Contains(s.a.SelectedRegions, region)
}

// SelectRegion adds region to the active set. Values already stored for the
// region become visible again.
func (s *Store) SelectRegion(region string) (bool, error) {
	if _, ok := s.cat.RegionByKey(region); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if s.IsActive(region) {
		return false, nil
	}
	s.a.SelectedRegions = append(s.a.SelectedRegions, region)
	return true, nil
}

// DeselectRegion removes region from the active set. Its measurements stay
// in the maps.
func (s *Store) DeselectRegion(region string) bool {
	i := slices.Index(s.a.SelectedRegions, region)
	if i < 0 {
		return false
	}
	s.a.SelectedRegions = slices.Delete(s.a.SelectedRegions, i, i+1)
	return true
}

// ToggleRegion flips region's selection and reports the new state.
func (s *Store) ToggleRegion(region string) (active bool, err error) {
	if s.DeselectRegion(region) {
		return false, nil
	}
	if _, err := s.SelectRegion(region); err != nil {
		return false, err
	}
	return true, nil
}

// Cell is a key within a named table.
type Cell struct {
	Table string
	Key   Key
}

// LegacyCells lists the cells of active regions that currently resolve
// through a bare key.
func (s *Store) LegacyCells() []Cell {
	var out []Cell
	s.eachActiveCell(func(table string, m map[string]string, region string, bk catalog.BaseKey) {
		k := Key{Region: region, Base: bk.Key}
		if _, ok := m[k.String()]; ok {
			return
		}
		if _, ok := legacyValue(m, bk.Key); ok {
			out = append(out, Cell{Table: table, Key: k})
		}
	})
	return out
}

// MigrateLegacy copies every bare value visible to an active region into that
// region's namespaced key and returns how many keys were written. Bare keys
// are kept so regions that are not active still fall back to them.
func (s *Store) MigrateLegacy() int {
	n := 0
	s.eachActiveCell(func(_ string, m map[string]string, region string, bk catalog.BaseKey) {
		ns := Key{Region: region, Base: bk.Key}.String()
		if _, ok := m[ns]; ok {
			return
		}
		if v, ok := legacyValue(m, bk.Key); ok {
			m[ns] = v
			n++
		}
	})
	return n
}

func (s *Store) eachActiveCell(fn func(table string, m map[string]string, region string, bk catalog.BaseKey)) {
	for _, region := range s.a.SelectedRegions {
		r, ok := s.cat.RegionByKey(region)
		if !ok {
			continue
		}
		for _, t := range model.AllTables {
			m := *s.a.TableMap(t.Name)
			if len(m) == 0 {
				continue
			}
			for _, bk := range r.BaseKeys(t.Name) {
				fn(t.Name, m, region, bk)
			}
		}
	}
}
