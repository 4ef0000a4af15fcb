// Package catalog holds the read-only table of anatomical regions and the
// movements and neuro screens each one contributes to an assessment.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a catalog defines no regions.
var ErrEmptyCatalog = errors.New("region catalog is empty")

// Sides used in base keys for bilateral tests.
var Sides = []string{"L", "R"}

// Movement is one range-of-motion / resisted test of a region.
type Movement struct {
	Name      string `yaml:"name" json:"name"`
	Bilateral bool   `yaml:"bilateral" json:"bilateral"`
}

// Region is one assessable anatomical area.
type Region struct {
	Key        string     `yaml:"key" json:"key"`
	Name       string     `yaml:"name" json:"name"`
	Movements  []Movement `yaml:"movements" json:"movements"`
	Dermatomes []string   `yaml:"dermatomes,omitempty" json:"dermatomes,omitempty"`
	Myotomes   []string   `yaml:"myotomes,omitempty" json:"myotomes,omitempty"`
	Reflexes   []string   `yaml:"reflexes,omitempty" json:"reflexes,omitempty"`
}

// Catalog is an ordered set of regions.
type Catalog struct {
	Regions []Region `yaml:"regions" json:"regions"`
}

// Load reads a YAML catalog. An empty path yields Default().
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks that region keys are usable as composite key prefixes.
func (c Catalog) Validate() error {
	if len(c.Regions) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		switch {
		case strings.TrimSpace(r.Key) == "":
			return fmt.Errorf("region %d: key is empty", i)
		case r.Key != strings.TrimSpace(r.Key):
			return fmt.Errorf("region %q: key has surrounding whitespace", r.Key)
		case strings.Contains(r.Key, ":"):
			return fmt.Errorf("region %q: key may not contain ':'", r.Key)
		case seen[r.Key]:
			return fmt.Errorf("region %q: duplicate key", r.Key)
		}
		seen[r.Key] = true
	}
	return nil
}

// RegionByKey returns the region for key, or ok=false.
func (c Catalog) RegionByKey(key string) (Region, bool) {
	for _, r := range c.Regions {
		if r.Key == key {
			return r, true
		}
	}
	return Region{}, false
}

// Keys returns the region keys in catalog order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c.Regions))
	for i, r := range c.Regions {
		keys[i] = r.Key
	}
	return keys
}

// Subset returns a catalog restricted to keys, preserving catalog order.
// Unknown keys are an error.
func (c Catalog) Subset(keys []string) (Catalog, error) {
	if len(keys) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := c.RegionByKey(k); !ok {
			return Catalog{}, fmt.Errorf("unknown region %q", k)
		}
		want[k] = true
	}
	var out Catalog
	for _, r := range c.Regions {
		if want[r.Key] {
			out.Regions = append(out.Regions, r)
		}
	}
	return out, nil
}
