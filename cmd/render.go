package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kyleking/db-scout/internal/types"
)

// renderRows prints rows as a bordered table. Column order is the sorted
// union of keys so output stays stable across runs.
func renderRows(w io.Writer, rows []types.Row) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	cols := columnOrder(rows)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}

	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := make(table.Row, len(cols))
		for i, col := range cols {
			tableRow[i] = row[col]
		}

		t.AppendRow(tableRow)
	}

	t.Render()
}

func columnOrder(rows []types.Row) []string {
	seen := make(map[string]bool)

	var cols []string

	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true

				cols = append(cols, col)
			}
		}
	}

	sort.Strings(cols)

	return cols
}
