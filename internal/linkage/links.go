package linkage

import "github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"

// linkable constrains a slice element type whose pointer carries a diagnosis link.
type linkable[T any] interface {
	*T
	model.Linkable
}

// SyncLinks rewrites every stale link in items to the primary code of list.
// A link is stale when it is blank or names no entry of list. Valid links are
// never moved. It reports whether any item changed; a second call with no
// intervening mutation always reports false.
func SyncLinks[T any, P linkable[T]](items []T, list model.DiagnosisList) bool {
	codes := list.CodeSet()
	primary := PrimaryCode(list)
	changed := false
	for i := range items {
		p := P(&items[i])
		cur := p.LinkedDiagnosis()
		if cur != "" && codes[cur] {
			continue
		}
		if p.StoredLinkedDiagnosis() == primary {
			continue
		}
		p.SetLinkedDiagnosis(primary)
		changed = true
	}
	return changed
}

// StaleLinks returns the indexes SyncLinks would rewrite, without mutating items.
func StaleLinks[T any, P linkable[T]](items []T, list model.DiagnosisList) []int {
	codes := list.CodeSet()
	primary := PrimaryCode(list)
	var stale []int
	for i := range items {
		p := P(&items[i])
		cur := p.LinkedDiagnosis()
		if (cur == "" || !codes[cur]) && p.StoredLinkedDiagnosis() != primary {
			stale = append(stale, i)
		}
	}
	return stale
}

// Relink points every item linked to from at to instead. Used when a
// diagnosis code is edited in place so its items follow it.
func Relink[T any, P linkable[T]](items []T, from, to string) int {
	if from == "" || from == to {
		return 0
	}
	n := 0
	for i := range items {
		p := P(&items[i])
		if p.LinkedDiagnosis() == from {
			p.SetLinkedDiagnosis(to)
			n++
		}
	}
	return n
}
