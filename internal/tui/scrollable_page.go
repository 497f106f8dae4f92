package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type ScrollablePageLine struct {
	Statements []*ScrollablePageLineStatement
	Reference  interface{}
}

type ScrollablePageLineStatement struct {
	Indent    int
	Content   string
	Color     tcell.Color
	Alignment int
}

// TextLine is a single statement line.
func TextLine(content string, color tcell.Color, ref interface{}) *ScrollablePageLine {
	return &ScrollablePageLine{
		Reference:  ref,
		Statements: []*ScrollablePageLineStatement{{Content: content, Color: color}},
	}
}

// ScrollablePage is a read-only list of lines with a highlighted cursor
// that keeps a few lines of context when scrolling.
type ScrollablePage struct {
	*tview.Box
	height                   int
	pageOffset               int
	selectedIndex            int
	followTail               bool
	content                  []*ScrollablePageLine
	selectionChangedCallback func(index int)
}

const scrollContext = 4

func NewScrollablePage() *ScrollablePage {
	return &ScrollablePage{
		Box: tview.NewBox(),
	}
}

func (sp *ScrollablePage) SetSelectionChangedFunc(changed func(index int)) *ScrollablePage {
	sp.selectionChangedCallback = changed
	return sp
}

// SetFollowTail keeps the last line in view as lines are appended.
func (sp *ScrollablePage) SetFollowTail(follow bool) *ScrollablePage {
	sp.followTail = follow
	return sp
}

func (sp *ScrollablePage) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return sp.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				sp.ScrollDown()
			case 'k':
				sp.ScrollUp()
			case 'g':
				sp.moveTo(0)
			case 'G':
				sp.moveTo(len(sp.content) - 1)
			}
		case tcell.KeyUp:
			sp.ScrollUp()
		case tcell.KeyDown:
			sp.ScrollDown()
		case tcell.KeyCtrlD, tcell.KeyPgDn:
			sp.ScrollHalfPageDown()
		case tcell.KeyCtrlU, tcell.KeyPgUp:
			sp.ScrollHalfPageUp()
		}
	})
}

func (sp *ScrollablePage) Clear() *ScrollablePage {
	sp.pageOffset = 0
	sp.selectedIndex = 0
	sp.content = []*ScrollablePageLine{}

	return sp
}

func (sp *ScrollablePage) SetLines(lines []*ScrollablePageLine) *ScrollablePage {
	sp.Clear()
	sp.content = lines

	return sp
}

func (sp *ScrollablePage) Append(line *ScrollablePageLine) {
	sp.content = append(sp.content, line)
	if sp.followTail {
		sp.moveTo(len(sp.content) - 1)
	}
}

func (sp *ScrollablePage) Lines() []*ScrollablePageLine {
	return sp.content
}

func (sp *ScrollablePage) GetSelectedReference() interface{} {
	if sp.selectedIndex < 0 || sp.selectedIndex >= len(sp.content) {
		return nil
	}

	v := sp.content[sp.selectedIndex]
	if v == nil {
		return nil
	}

	return v.Reference
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}

	return v
}

func (sp *ScrollablePage) moveSelected(size int) {
	old := sp.selectedIndex
	sp.selectedIndex = clamp(sp.selectedIndex+size, 0, len(sp.content)-1)

	if old != sp.selectedIndex && sp.selectionChangedCallback != nil {
		sp.selectionChangedCallback(sp.selectedIndex)
	}
}

func (sp *ScrollablePage) scroll(size int) {
	sp.pageOffset = clamp(sp.pageOffset+size, 0, len(sp.content)-sp.height)
}

func (sp *ScrollablePage) moveTo(index int) {
	sp.moveSelected(index - sp.selectedIndex)
	if sp.selectedIndex < sp.pageOffset || sp.selectedIndex >= sp.pageOffset+sp.height {
		sp.scroll(sp.selectedIndex - sp.pageOffset - sp.height/2)
	}
}

func (sp *ScrollablePage) ScrollDown() {
	if sp.pageOffset+sp.height-sp.selectedIndex <= scrollContext {
		sp.scroll(1)
	}

	sp.moveSelected(1)
}

func (sp *ScrollablePage) ScrollHalfPageDown() {
	sp.scroll(sp.height / 2)
	sp.moveSelected(sp.height / 2)
}

func (sp *ScrollablePage) ScrollUp() {
	if sp.selectedIndex-sp.pageOffset <= scrollContext {
		sp.scroll(-1)
	}

	sp.moveSelected(-1)
}

func (sp *ScrollablePage) ScrollHalfPageUp() {
	sp.scroll(-sp.height / 2)
	sp.moveSelected(-sp.height / 2)
}

func (sp *ScrollablePage) Draw(screen tcell.Screen) {
	sp.Box.DrawForSubclass(screen, sp)
	x, y, width, height := sp.GetInnerRect()
	sp.height = height

	end := sp.pageOffset + height
	if end > len(sp.content) {
		end = len(sp.content)
	}

	for i, row := sp.pageOffset, 0; i < end; i, row = i+1, row+1 {
		highlight := ""
		if i == sp.selectedIndex && sp.HasFocus() {
			highlight = "[:gray]"
		}

		tview.Print(screen, highlight+strings.Repeat(" ", width), x, y+row, width, tview.AlignLeft, tview.Styles.PrimaryTextColor)

		for _, s := range sp.content[i].Statements {
			color := s.Color
			if color == tcell.ColorDefault {
				color = tview.Styles.PrimaryTextColor
			}
			tview.Print(screen, highlight+s.Content, x+s.Indent, y+row, width-s.Indent, s.Alignment, color)
		}
	}
}
