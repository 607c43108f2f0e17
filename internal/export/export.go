package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"atrezzo/internal/model"
)

// Write saves products to path, choosing the format from the extension (.csv or .xlsx).
// Missing parent directories are created.
func Write(path string, products []model.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, products)
	case ".xlsx":
		return WriteXLSX(path, products)
	}
	return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}

// WriteCSV writes a header row with model.Columns followed by one row per product.
func WriteCSV(path string, products []model.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(model.Columns); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	for _, p := range products {
		if err := w.Write(p.Row()); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	return nil
}
