// Package linkage keeps a case's diagnosis list consistent with the billing
// codes and orders/referrals that point at it.
package linkage

import (
	"errors"
	"strings"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when an index names no list entry.
	ErrIndexOutOfRange = errors.New("diagnosis index out of range")
	// ErrInvalidDirection is returned by MoveDiagnosis for a direction other than -1 or +1.
	ErrInvalidDirection = errors.New("move direction must be -1 or +1")
	// ErrEmptyCode is returned when a diagnosis code is blank after trimming.
	ErrEmptyCode = errors.New("diagnosis code is empty")
	// ErrDuplicateDiagnosis is returned when the code is already on the list.
	ErrDuplicateDiagnosis = errors.New("diagnosis code already present")
)

// AddDiagnosis appends entry to the list as a secondary diagnosis (or primary
// if the list was empty). The code is trimmed; blank and duplicate codes are
// rejected and leave the list untouched.
func AddDiagnosis(list *model.DiagnosisList, entry model.DiagnosisEntry) error {
	entry.Code = strings.TrimSpace(entry.Code)
	if entry.Code == "" {
		return ErrEmptyCode
	}
	if list.Contains(entry.Code) {
		return ErrDuplicateDiagnosis
	}
	entry.IsPrimary = false
	*list = append(*list, entry)
	ReapplyPrimary(*list)
	return nil
}

// RemoveDiagnosis deletes the entry at index. An out-of-range index leaves the
// list untouched and returns ErrIndexOutOfRange. Dependent items are not
// touched here; callers must run SyncLinks afterwards.
func RemoveDiagnosis(list *model.DiagnosisList, index int) (bool, error) {
	l := *list
	if index < 0 || index >= len(l) {
		return false, ErrIndexOutOfRange
	}
	copy(l[index:], l[index+1:])
	l[len(l)-1] = model.DiagnosisEntry{}
	*list = l[:len(l)-1]
	ReapplyPrimary(*list)
	return true, nil
}

// MoveDiagnosis swaps the entry at index with its neighbour in direction
// (-1 up, +1 down). Moving past either end is a no-op.
func MoveDiagnosis(list model.DiagnosisList, index, direction int) (bool, error) {
	if direction != -1 && direction != 1 {
		return false, ErrInvalidDirection
	}
	if index < 0 || index >= len(list) {
		return false, ErrIndexOutOfRange
	}
	target := index + direction
	if target < 0 || target >= len(list) {
		return false, nil
	}
	list[index], list[target] = list[target], list[index]
	ReapplyPrimary(list)
	return true, nil
}

// ReplaceDiagnosis overwrites the entry at index, keeping its position. The
// new code must be non-blank and not used by another entry.
func ReplaceDiagnosis(list model.DiagnosisList, index int, entry model.DiagnosisEntry) (bool, error) {
	if index < 0 || index >= len(list) {
		return false, ErrIndexOutOfRange
	}
	entry.Code = strings.TrimSpace(entry.Code)
	if entry.Code == "" {
		return false, ErrEmptyCode
	}
	if at := list.IndexOf(entry.Code); at >= 0 && at != index {
		return false, ErrDuplicateDiagnosis
	}
	entry.IsPrimary = list[index].IsPrimary
	if list[index] == entry {
		return false, nil
	}
	list[index] = entry
	ReapplyPrimary(list)
	return true, nil
}

// ReapplyPrimary rewrites every IsPrimary flag from position and reports
// whether any flag changed.
func ReapplyPrimary(list model.DiagnosisList) bool {
	changed := false
	for i := range list {
		want := i == 0
		if list[i].IsPrimary != want {
			list[i].IsPrimary = want
			changed = true
		}
	}
	return changed
}

// PrimaryCode returns the trimmed code of the first entry, or "".
func PrimaryCode(list model.DiagnosisList) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].Key()
}
