package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

var statColumns = []table.Column{
	{Title: "gen", Width: 4},
	{Title: "segments", Width: 10},
	{Title: "min len", Width: 11},
	{Title: "max len", Width: 11},
	{Title: "pixel", Width: 11},
}

// refreshStats rebuilds the generation table from the session history.
func (m *Model) refreshStats() {
	if m.session == nil {
		return
	}
	hist := m.session.Snapshot().History
	rows := make([]table.Row, 0, len(hist))
	for _, g := range hist {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", g.Index),
			fmt.Sprintf("%d", g.Segments),
			fmt.Sprintf("%.4g", g.MinLength),
			fmt.Sprintf("%.4g", g.MaxLength),
			fmt.Sprintf("%.4g", g.PixelSize),
		})
	}
	m.tbl.SetRows(rows)
	if len(rows) == 0 {
		m.status = "no generations yet"
	}
}
