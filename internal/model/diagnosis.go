package model

import "strings"

// DiagnosisEntry is one coded diagnosis on a case. Identity is the trimmed Code.
type DiagnosisEntry struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`

	// IsPrimary mirrors list position and is rewritten after every mutation
	// and on load. Read it through DiagnosisList.IsPrimary when in doubt.
	IsPrimary bool `json:"isPrimary" yaml:"isPrimary"`
}

// Key returns the trimmed code used for identity and link matching.
func (e DiagnosisEntry) Key() string {
	return strings.TrimSpace(e.Code)
}

// Display returns the label if set, falling back to "code - description".
func (e DiagnosisEntry) Display() string {
	if l := strings.TrimSpace(e.Label); l != "" {
		return l
	}
	code := e.Key()
	desc := strings.TrimSpace(e.Description)
	switch {
	case code == "":
		return desc
	case desc == "":
		return code
	}
	return code + " - " + desc
}

// DiagnosisList is the ordered diagnosis list of a case. Index 0 is primary.
type DiagnosisList []DiagnosisEntry

// IsPrimary reports whether the entry at i is the primary diagnosis.
func (l DiagnosisList) IsPrimary(i int) bool {
	return i == 0 && len(l) > 0
}

// IndexOf returns the position of the first entry whose trimmed code equals
// code, or -1. Blank codes never match.
func (l DiagnosisList) IndexOf(code string) int {
	code = strings.TrimSpace(code)
	if code == "" {
		return -1
	}
	for i, e := range l {
		if e.Key() == code {
			return i
		}
	}
	return -1
}

// Contains reports whether code identifies an entry of the list.
func (l DiagnosisList) Contains(code string) bool {
	return l.IndexOf(code) >= 0
}

// CodeSet returns the set of usable codes in the list.
func (l DiagnosisList) CodeSet() map[string]bool {
	set := make(map[string]bool, len(l))
	for _, e := range l {
		if k := e.Key(); k != "" {
			set[k] = true
		}
	}
	return set
}
