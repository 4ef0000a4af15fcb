package model

// Table identifies one of the flat assessment maps on a case.
type Table struct {
	Name   string // e.g. "rom"
	Field  string // JSON field on Assessment, e.g. "rom"
	Suffix string // base key suffix for neuro screens, empty for movement tables
}

// AllTables lists the assessment tables in canonical order.
var AllTables = []Table{
	{Name: "rom", Field: "rom"},
	{Name: "resisted", Field: "resisted"},
	{Name: "dermatome", Field: "dermatomes", Suffix: "dermatome"},
	{Name: "myotome", Field: "myotomes", Suffix: "myotome"},
	{Name: "reflex", Field: "reflexes", Suffix: "reflex"},
}

// TableNames returns just the names of all tables.
func TableNames() []string {
	names := make([]string, len(AllTables))
	for i, t := range AllTables {
		names[i] = t.Name
	}
	return names
}

// TableByName returns the Table for the given name, or ok=false.
func TableByName(name string) (Table, bool) {
	for _, t := range AllTables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
