package grouping

import (
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/assessment"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// AssessmentRow is one measurement cell an active region requires.
type AssessmentRow struct {
	Region     string
	RegionName string
	Table      string
	Test       string
	Side       string
	Key        string // namespaced storage key
	Value      string
	Recorded   bool // a value exists, namespaced or legacy
	FromLegacy bool // value resolved through a bare key
}

// AssessmentRows derives, for every active region in selection order, the
// rows of every table its catalog entry defines. Regions missing from cat
// are skipped. Nothing is written to the assessment.
func AssessmentRows(a *model.Assessment, cat catalog.Catalog) []AssessmentRow {
	var rows []AssessmentRow
	for _, key := range a.SelectedRegions {
		r, ok := cat.RegionByKey(key)
		if !ok {
			continue
		}
		for _, t := range model.AllTables {
			m := *a.TableMap(t.Name)
			for _, bk := range r.BaseKeys(t.Name) {
				k := assessment.Key{Region: r.Key, Base: bk.Key}
				v, recorded := assessment.Read(m, r.Key, bk.Key)
				_, namespaced := m[k.String()]
				rows = append(rows, AssessmentRow{
					Region:     r.Key,
					RegionName: r.Name,
					Table:      t.Name,
					Test:       bk.Test,
					Side:       bk.Side,
					Key:        k.String(),
					Value:      v,
					Recorded:   recorded,
					FromLegacy: recorded && !namespaced,
				})
			}
		}
	}
	return rows
}
