package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"atrezzo/internal/model"
)

const sheet = "Sheet1"

// WriteXLSX writes the table to a single-sheet workbook. Rows without an image leave the
// image_url cell empty.
func WriteXLSX(path string, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, p := range products {
		row := make([]interface{}, 0, len(model.Columns))
		for _, v := range p.Row() {
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
