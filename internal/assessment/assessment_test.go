package assessment

import (
	"errors"
	"slices"
	"testing"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/catalog"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

func TestStore_SetAllocatesAndNamespaces(t *testing.T) {
	var a model.Assessment
	s := NewStore(&a, catalog.Default())

	changed, err := s.Set("rom", "shoulder", "Flexion_L", "120")
	if err != nil || !changed {
		t.Fatalf("Set: changed=%v err=%v", changed, err)
	}
	if a.ROM["shoulder:Flexion_L"] != "120" {
		t.Errorf("rom map = %v", a.ROM)
	}
	if _, err := s.Set("rom", "tail", "Wag", "1"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
	if _, err := s.Set("vibes", "hip", "Flexion_L", "1"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
	if _, err := s.Set("rom", "hip", "", "1"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestStore_TablesAreIndependent(t *testing.T) {
	var a model.Assessment
	s := NewStore(&a, catalog.Default())
	s.Set("rom", "hip", "Flexion_L", "110")
	s.Set("resisted", "hip", "Flexion_L", "4/5")
	s.Set("dermatome", "shoulder", "C5-L-dermatome", "intact")
	s.Set("dermatome", "elbow", "C5-L-dermatome", "diminished")

	if v, _, _ := s.Get("rom", "hip", "Flexion_L"); v != "110" {
		t.Errorf("rom = %q", v)
	}
	if v, _, _ := s.Get("resisted", "hip", "Flexion_L"); v != "4/5" {
		t.Errorf("resisted = %q", v)
	}
	if v, _, _ := s.Get("dermatome", "shoulder", "C5-L-dermatome"); v != "intact" {
		t.Errorf("shoulder dermatome = %q", v)
	}
}

func TestStore_DeselectKeepsValues(t *testing.T) {
	var a model.Assessment
	s := NewStore(&a, catalog.Default())
	if _, err := s.SelectRegion("hip"); err != nil {
		t.Fatal(err)
	}
	s.Set("rom", "hip", "Flexion_L", "110")

	if !s.DeselectRegion("hip") {
		t.Fatal("expected deselect to change selection")
	}
	if s.IsActive("hip") {
		t.Fatal("hip still active")
	}
	if a.ROM["hip:Flexion_L"] != "110" {
		t.Fatal("deselect deleted data")
	}

	active, err := s.ToggleRegion("hip")
	if err != nil || !active {
		t.Fatalf("Toggle: active=%v err=%v", active, err)
	}
	if v, _, _ := s.Get("rom", "hip", "Flexion_L"); v != "110" {
		t.Errorf("reselected value = %q", v)
	}
}

func TestStore_SelectRegion(t *testing.T) {
	var a model.Assessment
	s := NewStore(&a, catalog.Default())
	s.SelectRegion("shoulder")
	s.SelectRegion("hip")
	if changed, _ := s.SelectRegion("hip"); changed {
		t.Error("reselecting an active region reported a change")
	}
	if _, err := s.SelectRegion("tail"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
	if !slices.Equal(s.ActiveRegions(), []string{"shoulder", "hip"}) {
		t.Errorf("active = %v", s.ActiveRegions())
	}
	if s.DeselectRegion("knee") {
		t.Error("deselecting an inactive region reported a change")
	}
}

func TestStore_MigrateLegacy(t *testing.T) {
	a := model.Assessment{
		SelectedRegions: []string{"shoulder", "hip"},
		ROM: map[string]string{
			"Flexion_L":          "80",
			"Abduction_R":        "150",
			"hip:Abduction_R":    "40",
			"Unrelated Movement": "x",
		},
		Reflexes: map[string]string{"Biceps-L-reflex": "2+"},
	}
	s := NewStore(&a, catalog.Default())

	cells := s.LegacyCells()
	if len(cells) != 4 {
		t.Fatalf("legacy cells = %+v, want 4", cells)
	}

	n := s.MigrateLegacy()
	if n != 4 {
		t.Fatalf("migrated %d keys, want 4", n)
	}
	want := map[string]string{
		"shoulder:Flexion_L":   "80",
		"hip:Flexion_L":        "80",
		"shoulder:Abduction_R": "150",
		"hip:Abduction_R":      "40",
	}
	for k, v := range want {
		if a.ROM[k] != v {
			t.Errorf("%s = %q, want %q", k, a.ROM[k], v)
		}
	}
	if a.Reflexes["shoulder:Biceps-L-reflex"] != "2+" {
		t.Errorf("reflex not migrated: %v", a.Reflexes)
	}
	if a.ROM["Flexion_L"] != "80" {
		t.Error("bare key removed")
	}
	if s.MigrateLegacy() != 0 || len(s.LegacyCells()) != 0 {
		t.Error("migration is not idempotent")
	}
}
