// Package assessment stores region-scoped measurements in the flat string
// maps of a case's assessment, keyed "<region>:<baseKey>".
package assessment

import (
	"errors"
	"strings"
)

// Separator joins the region and base parts of a composite key.
const Separator = ":"

var (
	// ErrInvalidKey is returned for a key with no region, no base, or a separator in the region.
	ErrInvalidKey = errors.New("invalid assessment key")
	// ErrUnknownRegion is returned for a region missing from the catalog.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrUnknownTable is returned for a table name missing from model.AllTables.
	ErrUnknownTable = errors.New("unknown assessment table")
)

// Key addresses one measurement: a (region, base key) pair.
type Key struct {
	Region string
	Base   string
}

// String encodes k in the stored form. A key without a region encodes to the
// bare legacy form.
func (k Key) String() string {
	if k.Region == "" {
		return k.Base
	}
	return k.Region + Separator + k.Base
}

// Legacy reports whether k is a bare, un-namespaced key.
func (k Key) Legacy() bool {
	return k.Region == ""
}

// Validate checks that k can be written.
func (k Key) Validate() error {
	switch {
	case k.Region == "" || strings.Contains(k.Region, Separator):
		return ErrInvalidKey
	case k.Base == "":
		return ErrInvalidKey
	}
	return nil
}

// ParseKey decodes a stored key. Keys without a separator are legacy bare
// keys and come back with an empty Region. Region keys never contain the
// separator, so the split is on its first occurrence.
func ParseKey(s string) Key {
	region, base, ok := strings.Cut(s, Separator)
	if !ok || region == "" {
		return Key{Base: s}
	}
	return Key{Region: region, Base: base}
}
