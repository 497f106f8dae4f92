package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/rivo/tview"
)

var (
	SelectedColor = tcell.ColorYellow
	NormalColor   = tcell.ColorWhite
	MutedColor    = tcell.ColorGray
	ErrorColor    = tcell.ColorRed
	SuccessColor  = tcell.ColorGreen
)

func pad(input string) string {
	return fmt.Sprintf(" %s", input)
}

// escape keeps tview from reading brackets as color tags.
func escape(s string) string {
	return tview.Escape(s)
}

func checkbox(checked bool) string {
	if checked {
		return "[x[]"
	}

	return "[ []"
}

func setHeader(t *tview.Table, headers []string) {
	style := tcell.StyleDefault.Bold(true)
	for i, h := range headers {
		t.SetCell(0, i, tview.NewTableCell(pad(h)).
			SetSelectable(false).
			SetStyle(style))
	}
}

func colorRow(t *tview.Table, row int, color tcell.Color) {
	for i := 0; i < t.GetColumnCount(); i++ {
		if c := t.GetCell(row, i); c != nil {
			c.SetTextColor(color)
		}
	}
}

func newTable() *tview.Table {
	t := tview.NewTable()
	t.SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetBorder(true)

	return t
}

// repositoryTable renders the visible page of the repository view. Rows
// hold the repository name as reference.
type repositoryTable struct {
	View *tview.Table
}

var repositoryHeaders = []string{"", "NAME", "VISIBILITY", "LANGUAGE", "DESCRIPTION"}

func newRepositoryTable() *repositoryTable {
	return &repositoryTable{View: newTable()}
}

func (rt *repositoryTable) Render(repos []domain.Repository, sel *selection.Selection) {
	row, _ := rt.View.GetSelection()

	rt.View.Clear()
	setHeader(rt.View, repositoryHeaders)

	if len(repos) == 0 {
		rt.View.SetCell(1, 1, tview.NewTableCell(pad("No repositories match")).
			SetSelectable(false).
			SetTextColor(MutedColor))
		return
	}

	for i, r := range repos {
		checked := sel.Has(r.Name)
		values := []string{
			checkbox(checked),
			escape(r.Name),
			visibility(r),
			escape(r.Language),
			escape(r.Description),
		}
		for col, v := range values {
			cell := tview.NewTableCell(pad(v)).SetReference(r.Name)
			if col == len(values)-1 {
				cell.SetExpansion(1).SetMaxWidth(60)
			}
			rt.View.SetCell(i+1, col, cell)
		}

		color := NormalColor
		if checked {
			color = SelectedColor
		}
		colorRow(rt.View, i+1, color)
	}

	if row < 1 {
		row = 1
	}
	if row > len(repos) {
		row = len(repos)
	}
	rt.View.Select(row, 0)
}

// Current returns the name of the highlighted repository.
func (rt *repositoryTable) Current() (string, bool) {
	row, _ := rt.View.GetSelection()
	cell := rt.View.GetCell(row, 1)
	if cell == nil {
		return "", false
	}
	name, ok := cell.GetReference().(string)

	return name, ok
}

func visibility(r domain.Repository) string {
	switch {
	case r.Archived:
		return "archived"
	case r.Private:
		return "private"
	}

	return "public"
}

// propertyTable renders the visible page of the property view together with
// the value chosen for each property.
type propertyTable struct {
	View *tview.Table
}

var propertyHeaders = []string{"NAME", "TYPE", "VALUE", "DESCRIPTION"}

func newPropertyTable() *propertyTable {
	return &propertyTable{View: newTable()}
}

func (pt *propertyTable) Render(props []domain.Property, filters []selection.PropertyFilter) {
	row, _ := pt.View.GetSelection()

	pt.View.Clear()
	setHeader(pt.View, propertyHeaders)

	values := map[string]string{}
	for _, f := range filters {
		values[f.Name] = f.Value
	}

	for i, p := range props {
		value, chosen := values[p.Name]
		if !chosen {
			value = "-"
		}
		cells := []string{
			escape(p.Name),
			string(p.ValueType),
			escape(value),
			escape(p.Description),
		}
		for col, v := range cells {
			cell := tview.NewTableCell(pad(v)).SetReference(p.Name)
			if col == len(cells)-1 {
				cell.SetExpansion(1)
			}
			pt.View.SetCell(i+1, col, cell)
		}

		color := NormalColor
		if chosen {
			color = SelectedColor
		}
		colorRow(pt.View, i+1, color)
	}

	if row < 1 {
		row = 1
	}
	if row > len(props) {
		row = len(props)
	}
	if len(props) > 0 {
		pt.View.Select(row, 0)
	}
}

func (pt *propertyTable) Current() (string, bool) {
	row, _ := pt.View.GetSelection()
	cell := pt.View.GetCell(row, 0)
	if cell == nil {
		return "", false
	}
	name, ok := cell.GetReference().(string)

	return name, ok
}

func propertyValueItems(p domain.Property) []*FilterModalItem {
	values := p.AllowedValues
	if len(values) == 0 && p.ValueType == domain.PropertyTrueFalse {
		values = []string{"true", "false"}
	}

	items := make([]*FilterModalItem, 0, len(values))
	for _, v := range values {
		items = append(items, &FilterModalItem{Line: v, Ref: v})
	}

	return items
}

func joinNames(names []string, max int) string {
	if len(names) <= max {
		return strings.Join(names, ", ")
	}

	return fmt.Sprintf("%s and %d more", strings.Join(names[:max], ", "), len(names)-max)
}
