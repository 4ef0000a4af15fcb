package parquetio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// Write writes lines to a new Parquet file at path, replacing any existing file.
func Write(path string, lines []model.BillingLine) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lines-*.parquet")
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := parquet.NewGenericWriter[model.BillingLine](tmp)
	if _, err := w.Write(lines); err != nil {
		tmp.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close parquet file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename parquet file: %w", err)
	}
	return nil
}
