package catalog

import "github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"

// MovementKey builds the base key of a movement test, e.g. "Flexion_L".
// Midline movements use the bare name.
func MovementKey(movement, side string) string {
	if side == "" {
		return movement
	}
	return movement + "_" + side
}

// NeuroKey builds the base key of a neuro screen, e.g. "C5-L-dermatome".
func NeuroKey(level, side, suffix string) string {
	return level + "-" + side + "-" + suffix
}

// BaseKey is one measurable cell a region contributes to a table.
type BaseKey struct {
	Table string
	Test  string // movement name or neuro level
	Side  string
	Key   string
}

// BaseKeys lists every cell r contributes to the named table, in display order.
func (r Region) BaseKeys(table string) []BaseKey {
	t, ok := model.TableByName(table)
	if !ok {
		return nil
	}
	var out []BaseKey
	switch t.Name {
	case "rom", "resisted":
		for _, m := range r.Movements {
			if !m.Bilateral {
				out = append(out, BaseKey{Table: t.Name, Test: m.Name, Key: MovementKey(m.Name, "")})
				continue
			}
			for _, side := range Sides {
				out = append(out, BaseKey{Table: t.Name, Test: m.Name, Side: side, Key: MovementKey(m.Name, side)})
			}
		}
	default:
		for _, level := range r.levels(t.Name) {
			for _, side := range Sides {
				out = append(out, BaseKey{Table: t.Name, Test: level, Side: side, Key: NeuroKey(level, side, t.Suffix)})
			}
		}
	}
	return out
}

func (r Region) levels(table string) []string {
	switch table {
	case "dermatome":
		return r.Dermatomes
	case "myotome":
		return r.Myotomes
	case "reflex":
		return r.Reflexes
	}
	return nil
}
