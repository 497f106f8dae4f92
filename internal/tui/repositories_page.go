package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

type catalogLoaded struct {
	Organization string
	Repositories int
	Err          error
	FellBack     bool
}

// repositoriesPage lets the user pick the selection method and then the
// repositories or custom property values it needs.
type repositoriesPage struct {
	*tview.Flex
	method     *tview.DropDown
	search     *tview.InputField
	propSearch *tview.InputField
	note       *tview.TextView
	repos      *repositoryTable
	props      *propertyTable
	footer     *tview.TextView
	proceed    *tview.Button
	loading    bool
	loadID     int
	syncing    bool
	rendered   selection.Method
}

func newRepositoriesPage(t *Tui) *repositoriesPage {
	p := &repositoriesPage{
		method:     tview.NewDropDown().SetLabel("Target "),
		search:     tview.NewInputField().SetLabel("Search ").SetPlaceholder("name or description"),
		propSearch: tview.NewInputField().SetLabel("Properties ").SetPlaceholder("name or description"),
		note:       tview.NewTextView().SetDynamicColors(true),
		repos:      newRepositoryTable(),
		props:      newPropertyTable(),
		footer:     tview.NewTextView().SetDynamicColors(true),
		proceed:    tview.NewButton("Continue"),
	}
	p.repos.View.SetTitle(" Repositories ")
	p.props.View.SetTitle(" Custom properties ")

	options := make([]string, 0, len(selection.Methods))
	for _, m := range selection.Methods {
		options = append(options, m.DisplayName())
	}
	p.method.SetOptions(options, func(text string, index int) {
		if p.syncing || index < 0 {
			return
		}
		if err := t.session.Selection().SetMethod(selection.Methods[index]); err != nil {
			t.bus.Publish(topicStatusError, err)
			return
		}
		p.layout(t)
		p.render(t)
	})

	p.search.SetChangedFunc(func(text string) {
		p.filter(t, text)
	})
	p.propSearch.SetChangedFunc(func(text string) {
		p.filterProperties(t, text)
	})

	p.repos.View.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case ' ':
			p.toggleCurrent(t)
			return nil
		case 'a':
			p.selectVisible(t)
			return nil
		case 'c':
			t.session.Selection().ClearRepositories()
			t.bus.Publish(topicSelectionChanged, nil)
			return nil
		case ']':
			p.turnPage(t, 1)
			return nil
		case '[':
			p.turnPage(t, -1)
			return nil
		case '/':
			t.app.SetFocus(p.search)
			return nil
		}

		return event
	})
	p.repos.View.SetSelectedFunc(func(row, column int) {
		p.toggleCurrent(t)
	})

	p.props.View.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyDelete, event.Rune() == 'd':
			if name, ok := p.props.Current(); ok {
				t.session.Selection().RemoveProperty(name)
				t.bus.Publish(topicSelectionChanged, nil)
			}
			return nil
		case event.Rune() == ']':
			p.turnPropertyPage(t, 1)
			return nil
		case event.Rune() == '[':
			p.turnPropertyPage(t, -1)
			return nil
		case event.Rune() == '/':
			t.app.SetFocus(p.propSearch)
			return nil
		}

		return event
	})
	p.props.View.SetSelectedFunc(func(row, column int) {
		p.pickValue(t)
	})

	p.proceed.SetSelectedFunc(func() {
		_ = t.wizard.Next()
	})

	p.method.SetDoneFunc(func(key tcell.Key) { p.cycle(t, p.method, key) })
	p.search.SetDoneFunc(func(key tcell.Key) { p.cycle(t, p.search, key) })
	p.propSearch.SetDoneFunc(func(key tcell.Key) { p.cycle(t, p.propSearch, key) })
	p.repos.View.SetDoneFunc(func(key tcell.Key) { p.cycle(t, p.repos.View, key) })
	p.props.View.SetDoneFunc(func(key tcell.Key) { p.cycle(t, p.props.View, key) })

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow)
	p.layout(t)

	t.bus.Subscribe(topicSelectionChanged, func(interface{}) {
		p.render(t)
	})

	return p
}

func (p *repositoriesPage) layout(t *Tui) {
	m := t.session.Selection().Method()
	p.rendered = m

	p.Flex.Clear()
	p.Flex.AddItem(tview.NewFlex().
		AddItem(p.method, 0, 1, true).
		AddItem(p.search, 0, 2, false), 1, 0, true)
	p.Flex.AddItem(p.note, 1, 0, false)

	switch m {
	case selection.MethodProperties:
		p.Flex.AddItem(p.propSearch, 1, 0, false)
		p.Flex.AddItem(p.props.View, 0, 1, false)
		p.Flex.AddItem(p.repos.View, 0, 2, false)
	case selection.MethodSelected:
		p.Flex.AddItem(p.repos.View, 0, 1, false)
	default:
		p.Flex.AddItem(tview.NewBox(), 0, 1, false)
	}

	p.Flex.AddItem(p.footer, 1, 0, false)
	p.Flex.AddItem(tview.NewFlex().
		AddItem(tview.NewTextView().
			SetTextColor(MutedColor).
			SetText("Space toggle  a page  c clear  [ ] pages  / search  Tab next  Alt+→ continue"), 0, 1, false).
		AddItem(p.proceed, 12, 0, false), 1, 0, false)
}

// focusables lists the widgets Tab moves through for the active method.
func (p *repositoriesPage) focusables(t *Tui) []tview.Primitive {
	switch t.session.Selection().Method() {
	case selection.MethodProperties:
		return []tview.Primitive{p.method, p.propSearch, p.props.View, p.search, p.repos.View, p.proceed}
	case selection.MethodSelected:
		return []tview.Primitive{p.method, p.search, p.repos.View, p.proceed}
	}

	return []tview.Primitive{p.method, p.proceed}
}

func (p *repositoriesPage) cycle(t *Tui, from tview.Primitive, key tcell.Key) {
	step := 0
	switch key {
	case tcell.KeyTab, tcell.KeyEnter:
		step = 1
	case tcell.KeyBacktab:
		step = -1
	default:
		return
	}

	items := p.focusables(t)
	for i, item := range items {
		if item == from {
			t.app.SetFocus(items[(i+step+len(items))%len(items)])
			return
		}
	}
}

// enter loads the catalogs for the session organization unless they are
// already attached.
func (p *repositoriesPage) enter(t *Tui) {
	rc := t.session.RepositoryCatalog()
	if rc == nil || rc.Organization() != t.session.Organization() {
		p.load(t)
	}
	p.refresh(t)
}

func (p *repositoriesPage) load(t *Tui) {
	org := t.session.Organization()
	rc, pc := t.backend.Catalogs(t.session.Token())

	p.loadID++
	id := p.loadID
	p.loading = true
	t.bus.Publish(topicStatusInfo, fmt.Sprintf("Loading repositories of %s...", org))

	t.async(func() {
		repos, err := rc.Load(t.ctx, org)
		pc.Load(t.ctx, org)

		t.queue(func() {
			if id != p.loadID {
				return
			}
			p.loading = false
			t.session.AttachCatalogs(rc, pc)
			if term := strings.TrimSpace(p.search.GetText()); term != "" {
				rc.View().Filter(term)
			}
			if text := p.propSearch.GetText(); strings.TrimSpace(text) != "" {
				pc.Search(text)
			}
			t.bus.Publish(topicCatalogLoaded, catalogLoaded{
				Organization: org,
				Repositories: len(repos),
				Err:          err,
				FellBack:     pc.FellBack(),
			})
			p.render(t)
		})
	})
}

// filter applies term locally right away; a remote search follows in the
// background when the local matches are few.
func (p *repositoriesPage) filter(t *Tui, text string) {
	rc := t.session.RepositoryCatalog()
	if rc == nil || p.loading {
		return
	}

	term := strings.TrimSpace(text)
	view := rc.View()
	view.Filter(term)
	p.render(t)

	if !rc.WantsRemoteSearch(term, len(view.Filtered())) {
		return
	}

	t.async(func() {
		remote, err := rc.RemoteSearch(t.ctx, term)
		t.queue(func() {
			if err != nil {
				log.Warn().Err(err).Str("term", term).Msg("remote repository search unavailable")
				return
			}
			if view.Term() != term || t.session.RepositoryCatalog() != rc {
				return
			}
			view.SetFiltered(term, catalog.MergeByName(view.Filtered(), remote))
			p.render(t)
		})
	})
}

func (p *repositoriesPage) filterProperties(t *Tui, text string) {
	pc := t.session.PropertyCatalog()
	if pc == nil || p.loading {
		return
	}

	pc.Search(text)
	p.props.View.Select(1, 0)
	p.render(t)
}

func (p *repositoriesPage) toggleCurrent(t *Tui) {
	name, ok := p.repos.Current()
	if !ok {
		return
	}
	t.session.Selection().Toggle(name)
	t.bus.Publish(topicSelectionChanged, nil)
}

func (p *repositoriesPage) selectVisible(t *Tui) {
	rc := t.session.RepositoryCatalog()
	if rc == nil {
		return
	}

	names := []string{}
	for _, r := range rc.View().Visible() {
		names = append(names, r.Name)
	}
	t.session.Selection().SelectPage(names)
	t.bus.Publish(topicSelectionChanged, nil)
}

func (p *repositoriesPage) turnPage(t *Tui, step int) {
	rc := t.session.RepositoryCatalog()
	if rc == nil {
		return
	}

	moved := rc.View().PrevPage
	if step > 0 {
		moved = rc.View().NextPage
	}
	if moved() {
		p.repos.View.Select(1, 0)
		p.render(t)
	}
}

func (p *repositoriesPage) turnPropertyPage(t *Tui, step int) {
	pc := t.session.PropertyCatalog()
	if pc == nil {
		return
	}

	moved := pc.View().PrevPage
	if step > 0 {
		moved = pc.View().NextPage
	}
	if moved() {
		p.props.View.Select(1, 0)
		p.render(t)
	}
}

func (p *repositoriesPage) pickValue(t *Tui) {
	pc := t.session.PropertyCatalog()
	name, ok := p.props.Current()
	if pc == nil || !ok {
		return
	}
	prop, ok := pc.Find(name)
	if !ok {
		return
	}

	t.showValuePicker(prop, func(value string) {
		t.session.Selection().SetProperty(prop.Name, value)
		t.bus.Publish(topicSelectionChanged, nil)
	})
}

// refresh re-reads the session, e.g. after a history step restored it.
func (p *repositoriesPage) refresh(t *Tui) {
	m := t.session.Selection().Method()
	for i, v := range selection.Methods {
		if v == m {
			p.syncing = true
			p.method.SetCurrentOption(i)
			p.syncing = false
		}
	}
	if m != p.rendered {
		p.layout(t)
	}
	p.render(t)
}

func (p *repositoriesPage) render(t *Tui) {
	sel := t.session.Selection()
	rc := t.session.RepositoryCatalog()

	switch sel.Method() {
	case selection.MethodAll:
		p.note.SetText(fmt.Sprintf("[yellow]Every repository of %s receives an issue (first 100).", t.session.Organization()))
	case selection.MethodProperties:
		p.note.SetText("[yellow]Choose property values with Enter. Issues go to the repositories selected below.")
	default:
		p.note.SetText("")
	}

	if p.loading || rc == nil {
		p.repos.View.Clear()
		p.repos.View.SetCell(1, 1, tview.NewTableCell(pad("Loading...")).SetSelectable(false))
		p.footer.SetText("")
		return
	}

	view := rc.View()
	p.repos.Render(view.Visible(), sel)

	propertyPage := ""
	if pc := t.session.PropertyCatalog(); pc != nil {
		pv := pc.View()
		p.props.Render(pv.Visible(), sel.Properties())
		if sel.Method() == selection.MethodProperties {
			propertyPage = fmt.Sprintf("  property page %d/%d (%d matches)",
				pv.Page(), pv.TotalPages(), len(pv.Filtered()))
		}
	}

	p.footer.SetText(fmt.Sprintf("page %d/%d (%d matches)%s  [yellow]%d selected[-]%s",
		view.Page(), view.TotalPages(), len(view.Filtered()), propertyPage,
		len(sel.Repositories()), p.propertySummary(sel.Properties())))
}

func (p *repositoriesPage) propertySummary(filters []selection.PropertyFilter) string {
	if len(filters) == 0 {
		return ""
	}

	names := make([]string, 0, len(filters))
	for _, f := range filters {
		names = append(names, escape(f.Name+"="+f.Value))
	}

	return "  properties: " + joinNames(names, 3)
}

func (p *repositoriesPage) focus() tview.Primitive {
	switch p.rendered {
	case selection.MethodSelected:
		return p.repos.View
	case selection.MethodProperties:
		return p.props.View
	}

	return p.method
}
