package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).PaddingRight(1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(1)
)

// TemplateRow is one line of a template listing.
type TemplateRow struct {
	Group  string
	Label  string
	Source string
	Target string
}

// RenderTemplateTable renders templates as a table. Consecutive rows of the
// same group show the group name once.
func RenderTemplateTable(rows []TemplateRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("GROUP", "LABEL", "SOURCE", "TARGET").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return StyleNoun.PaddingRight(1)
			default:
				return tableCellStyle
			}
		})

	for i, r := range rows {
		group := r.Group
		if i > 0 && rows[i-1].Group == r.Group {
			group = ""
		}
		t.Row(group, r.Label, r.Source, r.Target)
	}

	return t.String()
}
