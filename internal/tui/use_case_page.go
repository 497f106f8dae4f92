package tui

import (
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/rivo/tview"
)

type useCasePage struct {
	*tview.Flex
	list *tview.List
}

func newUseCasePage(t *Tui) *useCasePage {
	p := &useCasePage{list: tview.NewList()}

	p.list.SetBorder(true).SetTitle(" What should Copilot work on? ")
	for _, u := range domain.UseCases {
		u := u
		p.list.AddItem(u.DisplayName(), u.Description(), 0, func() {
			if err := t.wizard.SelectUseCase(u); err != nil {
				t.bus.Publish(topicStatusError, err)
				return
			}
			p.refresh(t)
		})
	}

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.list, 0, 1, true).
		AddItem(tview.NewTextView().
			SetTextColor(MutedColor).
			SetText("Enter selects a use case. Alt+→ continues once one is chosen."), 1, 0, false)

	return p
}

// refresh marks the chosen use case and moves the cursor onto it.
func (p *useCasePage) refresh(t *Tui) {
	chosen := t.session.UseCase()
	for i, u := range domain.UseCases {
		name := u.DisplayName()
		if u == chosen {
			name = "✓ " + name
			p.list.SetCurrentItem(i)
		}
		p.list.SetItemText(i, name, u.Description())
	}
}

func (p *useCasePage) focus() tview.Primitive {
	return p.list
}
