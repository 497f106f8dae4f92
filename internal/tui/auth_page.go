package tui

import (
	"github.com/mageroni/Agent-Quickstart/internal/validation"
	"github.com/rivo/tview"
)

// authPage collects the organization and the token. Both are validated as
// they are typed and the result is shown below the form.
type authPage struct {
	*tview.Flex
	form         *tview.Form
	organization *tview.InputField
	token        *tview.InputField
	feedback     *tview.TextView
	syncing      bool
}

func newAuthPage(t *Tui) *authPage {
	p := &authPage{
		organization: tview.NewInputField().
			SetLabel("Organization").
			SetFieldWidth(40).
			SetPlaceholder("my-org"),
		token: tview.NewInputField().
			SetLabel("Personal access token").
			SetFieldWidth(50).
			SetMaskCharacter('*'),
		feedback: tview.NewTextView().SetDynamicColors(true),
	}

	p.organization.SetChangedFunc(func(text string) {
		if p.syncing {
			return
		}
		t.session.SetOrganizationInput(text)
		p.validate(t)
	})
	p.token.SetChangedFunc(func(text string) {
		if p.syncing {
			return
		}
		t.session.SetTokenInput(text)
		p.validate(t)
	})

	p.form = tview.NewForm().
		AddFormItem(p.organization).
		AddFormItem(p.token).
		AddButton("Continue", func() {
			_ = t.wizard.Next()
		}).
		AddButton("Back", func() {
			_ = t.wizard.Back()
		})
	p.form.SetBorder(true).SetTitle(" GitHub credentials ")

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.form, 9, 0, true).
		AddItem(p.feedback, 2, 0, false).
		AddItem(tview.NewTextView().
			SetTextColor(MutedColor).
			SetText("The token needs the repo and read:org scopes. It is kept in memory only."), 0, 1, false)

	return p
}

func (p *authPage) validate(t *Tui) {
	org := t.session.OrganizationInput()
	token := t.session.TokenInput()

	var msg string
	switch {
	case org == "" && token == "":
		msg = ""
	case !validation.IsValidOrganizationName(org):
		msg = "[red]Organization names use letters, digits and inner hyphens"
	case !validation.IsValidToken(token):
		msg = "[red]The token is at least 20 letters, digits or underscores"
	default:
		msg = "[green]✓ Ready to load repositories"
	}
	p.feedback.SetText(msg)
}

// refresh copies the session inputs into the fields without feeding them
// back.
func (p *authPage) refresh(t *Tui) {
	p.syncing = true
	p.organization.SetText(t.session.OrganizationInput())
	p.token.SetText(t.session.TokenInput())
	p.syncing = false
	p.validate(t)
}

func (p *authPage) focus() tview.Primitive {
	return p.form
}
