package tui

import (
	"fmt"

	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/workflow"
	"github.com/rivo/tview"
)

type workflowProgress struct {
	Done   int
	Total  int
	Result workflow.Result
}

type workflowFinished struct {
	Summary *workflow.Summary
	Err     error
}

type resultsPage struct {
	*tview.Flex
	headline *tview.TextView
	lines    *ScrollablePage
	buttons  *tview.Form
}

func newResultsPage(t *Tui) *resultsPage {
	p := &resultsPage{
		headline: tview.NewTextView().SetDynamicColors(true),
		lines:    NewScrollablePage().SetFollowTail(true),
	}
	p.lines.SetBorder(true).SetTitle(" Results ")

	p.buttons = tview.NewForm().
		SetHorizontal(true).
		AddButton("Start over", func() {
			if !t.running {
				t.wizard.Reset()
			}
		}).
		AddButton("Quit", t.app.Stop)

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.headline, 2, 0, false).
		AddItem(p.lines, 0, 1, true).
		AddItem(p.buttons, 3, 0, false)

	t.bus.Subscribe(topicWorkflowProgress, func(data interface{}) {
		p.progress(data.(workflowProgress))
	})
	t.bus.Subscribe(topicWorkflowFinished, func(data interface{}) {
		p.finish(data.(workflowFinished))
	})

	return p
}

func (p *resultsPage) start(org string) {
	p.lines.Clear()
	p.headline.SetText(fmt.Sprintf("[yellow]Creating issues in %s...", escape(org)))
}

func (p *resultsPage) progress(m workflowProgress) {
	r := m.Result
	prefix := fmt.Sprintf("[%d/%d] %s", m.Done, m.Total, r.Repository)

	if !r.Succeeded {
		_, msg := client.Classify(r.Error)
		p.lines.Append(TextLine(escape(prefix+": "+msg), ErrorColor, r))
		return
	}

	agent := "agent assigned"
	if !r.AgentAssigned {
		agent = "agent not assigned"
	}
	ref := fmt.Sprintf("#%d", r.Issue.Number)
	if r.Issue.URL != "" {
		ref = r.Issue.URL
	}
	color := SuccessColor
	if !r.AgentAssigned {
		color = SelectedColor
	}
	p.lines.Append(TextLine(escape(fmt.Sprintf("%s: %s, %s", prefix, ref, agent)), color, r))
}

func (p *resultsPage) finish(m workflowFinished) {
	if m.Err != nil {
		_, msg := client.Classify(m.Err)
		p.headline.SetText("[red]" + escape(msg))
		return
	}

	color := "green"
	switch m.Summary.Status() {
	case workflow.StatusCompletedWithFailures:
		color = "yellow"
	case workflow.StatusFailed:
		color = "red"
	}
	p.headline.SetText(fmt.Sprintf("[%s]%s", color, escape(m.Summary.Message())))
}

func (p *resultsPage) focus() tview.Primitive {
	return p.lines
}
