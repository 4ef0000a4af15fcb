// Package record reads and writes case records as JSON documents.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// Decode parses a case record. Records without an ID are assigned one.
func Decode(data []byte) (*model.CaseRecord, error) {
	var rec model.CaseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode case record: %w", err)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return &rec, nil
}

// Load reads the case record at path.
func Load(path string) (*model.CaseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case record: %w", err)
	}
	return Decode(data)
}

// Encode renders rec as indented JSON.
func Encode(rec *model.CaseRecord) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode case record: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes rec to path through a temp file in the same directory so a
// crash never leaves a truncated document behind.
func Save(path string, rec *model.CaseRecord) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".case-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace case record: %w", err)
	}
	return nil
}
