package export

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"atrezzo/internal/model"
)

// Preview renders up to limit products as a terminal table. limit <= 0 renders all of them.
func Preview(w io.Writer, products []model.Product, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"#"}
	for _, c := range model.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, p := range products {
		if limit > 0 && i >= limit {
			break
		}
		row := table.Row{p.Position}
		for _, v := range p.Row() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	if limit > 0 && len(products) > limit {
		t.AppendFooter(table.Row{"", "...", len(products) - limit, "more rows"})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
