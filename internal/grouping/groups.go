// Package grouping derives the per-diagnosis presentation of a case's
// dependent items and the assessment rows its active regions require.
package grouping

import (
	"strings"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// BillingLink and OrderLink are the link accessors for the two dependent collections.
func BillingLink(b model.BillingCodeEntry) string { return b.LinkedDiagnosisCode }
func OrderLink(o model.OrderReferralEntry) string { return o.LinkedDiagnosisCode }

// BuildDiagnosisGroups partitions item indexes by linked diagnosis. Groups
// follow list order and keep item order within each group. Items with a blank
// or unknown link land in a trailing unlinked group, which is only present
// when non-empty, except that an empty list always yields exactly the
// unlinked group. A code repeated in the list is grouped once, at its first
// position.
func BuildDiagnosisGroups[T any](list model.DiagnosisList, items []T, linkedCode func(T) string) []model.DiagnosisGroup {
	unlinked := model.DiagnosisGroup{Key: model.UnlinkedGroupKey, Label: "Unlinked", Rank: -1}
	if len(list) == 0 {
		unlinked.Indexes = make([]int, len(items))
		for i := range items {
			unlinked.Indexes[i] = i
		}
		return []model.DiagnosisGroup{unlinked}
	}

	groups := make([]model.DiagnosisGroup, 0, len(list)+1)
	byCode := make(map[string]int, len(list))
	for i, e := range list {
		code := e.Key()
		if code == "" {
			continue
		}
		if _, dup := byCode[code]; dup {
			continue
		}
		byCode[code] = len(groups)
		groups = append(groups, model.DiagnosisGroup{Key: code, Label: e.Display(), Rank: i})
	}

	for i, it := range items {
		code := strings.TrimSpace(linkedCode(it))
		if g, ok := byCode[code]; ok && code != "" {
			groups[g].Indexes = append(groups[g].Indexes, i)
			continue
		}
		unlinked.Indexes = append(unlinked.Indexes, i)
	}
	if len(unlinked.Indexes) > 0 {
		groups = append(groups, unlinked)
	}
	return groups
}
