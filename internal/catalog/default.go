package catalog

func bilateral(names ...string) []Movement {
	out := make([]Movement, len(names))
	for i, n := range names {
		out[i] = Movement{Name: n, Bilateral: true}
	}
	return out
}

func midline(names ...string) []Movement {
	out := make([]Movement, len(names))
	for i, n := range names {
		out[i] = Movement{Name: n}
	}
	return out
}

// Default returns the built-in region catalog. Several regions share
// movement names and neuro levels on purpose.
func Default() Catalog {
	return Catalog{Regions: []Region{
		{
			Key:        "shoulder",
			Name:       "Shoulder",
			Movements:  bilateral("Flexion", "Extension", "Abduction", "Adduction", "Internal Rotation", "External Rotation"),
			Dermatomes: []string{"C4", "C5", "C6"},
			Myotomes:   []string{"C5", "C6"},
			Reflexes:   []string{"Biceps"},
		},
		{
			Key:        "elbow",
			Name:       "Elbow",
			Movements:  bilateral("Flexion", "Extension", "Supination", "Pronation"),
			Dermatomes: []string{"C5", "C6", "C7", "T1"},
			Myotomes:   []string{"C6", "C7"},
			Reflexes:   []string{"Biceps", "Brachioradialis", "Triceps"},
		},
		{
			Key:        "wrist",
			Name:       "Wrist/Hand",
			Movements:  bilateral("Flexion", "Extension", "Radial Deviation", "Ulnar Deviation"),
			Dermatomes: []string{"C6", "C7", "C8"},
			Myotomes:   []string{"C7", "C8", "T1"},
		},
		{
			Key:        "cervical-spine",
			Name:       "Cervical Spine",
			Movements:  append(midline("Flexion", "Extension"), bilateral("Side Bending", "Rotation")...),
			Dermatomes: []string{"C2", "C3", "C4", "C5", "C6", "C7", "C8"},
			Myotomes:   []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "T1"},
			Reflexes:   []string{"Biceps", "Brachioradialis", "Triceps"},
		},
		{
			Key:        "lumbar-spine",
			Name:       "Lumbar Spine",
			Movements:  append(midline("Flexion", "Extension"), bilateral("Side Bending", "Rotation")...),
			Dermatomes: []string{"L1", "L2", "L3", "L4", "L5", "S1", "S2"},
			Myotomes:   []string{"L2", "L3", "L4", "L5", "S1"},
			Reflexes:   []string{"Patellar", "Achilles"},
		},
		{
			Key:        "hip",
			Name:       "Hip",
			Movements:  bilateral("Flexion", "Extension", "Abduction", "Adduction", "Internal Rotation", "External Rotation"),
			Dermatomes: []string{"L1", "L2", "L3"},
			Myotomes:   []string{"L2", "L3"},
		},
		{
			Key:        "knee",
			Name:       "Knee",
			Movements:  bilateral("Flexion", "Extension"),
			Dermatomes: []string{"L3", "L4"},
			Myotomes:   []string{"L3", "L4"},
			Reflexes:   []string{"Patellar"},
		},
		{
			Key:        "ankle",
			Name:       "Ankle/Foot",
			Movements:  bilateral("Dorsiflexion", "Plantarflexion", "Inversion", "Eversion"),
			Dermatomes: []string{"L4", "L5", "S1"},
			Myotomes:   []string{"L4", "L5", "S1"},
			Reflexes:   []string{"Achilles"},
		},
	}}
}
