package model

// UnlinkedGroupKey keys the synthetic group holding items with no valid link.
const UnlinkedGroupKey = "__unlinked__"

// DiagnosisGroup is a derived presentation bucket: the indexes of dependent
// items linked to one diagnosis. Never persisted.
type DiagnosisGroup struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Rank    int    `json:"rank"` // position in the diagnosis list, -1 for the unlinked group
	Indexes []int  `json:"indexes"`
}

// Unlinked reports whether g is the synthetic unlinked group.
func (g DiagnosisGroup) Unlinked() bool {
	return g.Key == UnlinkedGroupKey
}
