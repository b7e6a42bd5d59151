package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

var attrColumns = []table.Column{
	{Title: "id", Width: 12},
	{Title: "mode", Width: 16},
	{Title: "type", Width: 11},
	{Title: "vertices", Width: 8},
	{Title: "colour", Width: 8},
	{Title: "width", Width: 5},
	{Title: "dash", Width: 8},
}

// refreshAttrs rebuilds the features table from the store.
func (m *Model) refreshAttrs() {
	fs := m.ctl.Features()
	if len(fs) == 0 {
		m.showAttrs = false
		m.status = "no features drawn"
		return
	}
	rows := make([]table.Row, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, table.Row{
			f.ID,
			string(f.Properties.Mode),
			string(f.Geometry.Type),
			fmt.Sprintf("%d", f.Vertices()),
			f.Properties.Color,
			fmtFloat(f.Properties.Thickness),
			fmtDash(f.Properties.DashArray),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns)
	m.tbl.SetRows(rows)
	if m.tbl.Cursor() >= len(rows) {
		m.tbl.SetCursor(len(rows) - 1)
	}
}
