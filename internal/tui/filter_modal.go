package tui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type FilterModalItem struct {
	Line string
	Ref  interface{}
}

// FilterModal picks one item from a filterable list. When free input is
// allowed, Enter on an empty match list submits the typed text instead.
type FilterModal struct {
	*tview.Flex
	frame         *tview.Flex
	input         *tview.InputField
	filterContent []*ScrollablePageLine
	contentTable  *ScrollablePage
	freeInput     bool
	callback      func(i *FilterModalItem)
}

func (m *FilterModal) Clear() {
	m.input.SetText("")
	m.filterContent = []*ScrollablePageLine{}
	m.contentTable.Clear()
}

func (m *FilterModal) SetTitle(title string) *FilterModal {
	m.frame.SetTitle(" " + title + " ")
	return m
}

// SetData installs the items and the callback. cb receives nil when the
// modal is dismissed.
func (m *FilterModal) SetData(data []*FilterModalItem, freeInput bool, cb func(item *FilterModalItem)) {
	filterContent := make([]*ScrollablePageLine, 0, len(data))
	for _, item := range data {
		filterContent = append(filterContent, TextLine(item.Line, tcell.ColorDefault, item))
	}

	m.input.SetText("")
	m.filterContent = filterContent
	m.contentTable.SetLines(filterContent)
	m.freeInput = freeInput
	m.callback = cb

	placeholder := "Filter values"
	if freeInput {
		placeholder = "Type a value"
	}
	m.input.SetPlaceholder(placeholder)
}

func (m *FilterModal) filter(input string) {
	li := strings.ToLowerSpecial(unicode.CaseRanges, input)
	filtered := make([]*ScrollablePageLine, 0)
	for _, line := range m.filterContent {
		for _, stmnt := range line.Statements {
			lc := strings.ToLowerSpecial(unicode.CaseRanges, stmnt.Content)
			if strings.Contains(lc, li) {
				filtered = append(filtered, line)
				break
			}
		}
	}

	m.contentTable.SetLines(filtered)
}

func (m *FilterModal) submit() {
	if m.callback == nil {
		return
	}

	if fmi, ok := m.contentTable.GetSelectedReference().(*FilterModalItem); ok {
		m.callback(fmi)
		return
	}

	text := strings.TrimSpace(m.input.GetText())
	if m.freeInput && text != "" {
		m.callback(&FilterModalItem{Line: text, Ref: text})
	}
}

func (m *FilterModal) dismiss() {
	if m.callback != nil {
		m.callback(nil)
	}
}

func (m *FilterModal) Input() *tview.InputField {
	return m.input
}

func NewFilterModal() *FilterModal {
	modal := func(p tview.Primitive, width, height int) *tview.Flex {
		return tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(
				tview.NewFlex().SetDirection(tview.FlexRow).
					AddItem(nil, 0, 1, false).
					AddItem(p, height, 1, true).
					AddItem(nil, 0, 1, false),
				width, 1, true,
			).
			AddItem(nil, 0, 1, false)
	}

	m := &FilterModal{}
	contentTable := NewScrollablePage()
	filterInput := tview.NewInputField()
	filterInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlJ, tcell.KeyDown:
			contentTable.ScrollDown()
			return nil
		case tcell.KeyCtrlK, tcell.KeyUp:
			contentTable.ScrollUp()
			return nil
		case tcell.KeyEsc:
			m.dismiss()
			return nil
		case tcell.KeyEnter:
			m.submit()
			return nil
		}

		return event
	})

	contentTable.SetBorder(true)

	s := tview.NewFlex()
	style := tcell.StyleDefault.Background(s.GetBackgroundColor())
	filterInput.SetFieldStyle(style).SetBorder(true)
	filterInput.SetChangedFunc(m.filter)

	s.SetDirection(tview.FlexRow).
		AddItem(filterInput, 3, 1, true).
		AddItem(contentTable, 0, 1, false)

	s.SetBorder(true).SetTitle(" Value ")

	m.Flex = modal(s, 60, 16)
	m.frame = s
	m.input = filterInput
	m.contentTable = contentTable

	return m
}
