package tui

import (
	"fmt"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/rivo/tview"
)

// promptPage edits the issue body and starts the run. The body starts out
// as the template of the chosen use case.
type promptPage struct {
	*tview.Flex
	summary *tview.TextView
	area    *tview.TextArea
	buttons *tview.Form
	syncing bool

	// template is the last template put into the area and the use case it
	// belongs to. An untouched template follows use case changes.
	template    string
	templateFor domain.UseCase
}

func newPromptPage(t *Tui) *promptPage {
	p := &promptPage{
		summary: tview.NewTextView().SetDynamicColors(true),
		area:    tview.NewTextArea().SetPlaceholder("Describe the work for the coding agent"),
	}
	p.area.SetBorder(true).SetTitle(" Issue body ")
	p.area.SetChangedFunc(func() {
		if p.syncing {
			return
		}
		t.session.SetPrompt(p.area.GetText())
	})

	p.buttons = tview.NewForm().
		SetHorizontal(true).
		AddButton("Create issues", t.execute).
		AddButton("Restore template", func() {
			p.loadTemplate(t, true)
		}).
		AddButton("Back", func() {
			_ = t.wizard.Back()
		})

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.summary, 4, 0, false).
		AddItem(p.area, 0, 1, true).
		AddItem(p.buttons, 3, 0, false)

	return p
}

func (p *promptPage) enter(t *Tui) {
	p.refresh(t)

	prompt := t.session.Prompt()
	if prompt == "" || (prompt == p.template && p.templateFor != t.session.UseCase()) {
		p.loadTemplate(t, false)
	}
}

func (p *promptPage) loadTemplate(t *Tui, force bool) {
	u := t.session.UseCase()
	t.async(func() {
		text := t.backend.Prompt(t.ctx, u)
		t.queue(func() {
			if t.session.UseCase() != u {
				return
			}
			current := t.session.Prompt()
			if !force && current != "" && current != p.template {
				return
			}
			p.template = text
			p.templateFor = u
			t.session.SetPrompt(text)
			p.refresh(t)
		})
	})
}

func (p *promptPage) refresh(t *Tui) {
	p.syncing = true
	if p.area.GetText() != t.session.Prompt() {
		p.area.SetText(t.session.Prompt(), false)
	}
	p.syncing = false

	sel := t.session.Selection()
	target := fmt.Sprintf("%d selected repositories", len(sel.Repositories()))
	if sel.Method() == selection.MethodAll {
		target = "every repository (first 100)"
	}

	p.summary.SetText(fmt.Sprintf(
		"Use case:      [yellow]%s[-]\nOrganization:  [yellow]%s[-]\nTargets:       [yellow]%s[-]\n",
		t.session.UseCase().DisplayName(), escape(t.session.Organization()), target,
	))
}

func (p *promptPage) focus() tview.Primitive {
	return p.area
}
