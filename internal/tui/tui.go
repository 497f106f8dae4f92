// Package tui renders the wizard in the terminal with tview. It only talks
// to the wizard, the session and the catalogs; none of them know about it.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/session"
	"github.com/mageroni/Agent-Quickstart/internal/wizard"
	"github.com/mageroni/Agent-Quickstart/internal/workflow"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	resultsPageName     = "results"
	valuePickerPageName = "value-picker"

	helpText = "Alt+←/→ stages  Ctrl+P/Ctrl+N history  Ctrl+C quit"
)

// Backend provides the GitHub backed services for the credentials the user
// entered.
type Backend interface {
	Catalogs(token string) (*catalog.RepositoryCatalog, *catalog.PropertyCatalog)
	Prompt(ctx context.Context, u domain.UseCase) string
	Run(ctx context.Context, r *workflow.Request, observer workflow.Observer) (*workflow.Summary, error)
}

type Options struct {
	AutoAdvanceDelay time.Duration
	// Scheduler replaces the timer based auto-advance scheduler.
	Scheduler wizard.Scheduler
}

type stepButton struct {
	stage  wizard.Stage
	button *tview.Button
}

type Tui struct {
	app     *tview.Application
	root    *tview.Flex
	pages   *tview.Pages
	steps   []stepButton
	status  *tview.TextView
	picker  *FilterModal
	bus     *EventBus
	wizard  *wizard.Wizard
	session *session.Session
	backend Backend

	useCase      *useCasePage
	auth         *authPage
	repositories *repositoriesPage
	prompt       *promptPage
	results      *resultsPage

	ctx    context.Context
	cancel context.CancelFunc

	// queue runs f on the UI goroutine, async runs f off it.
	queue func(f func())
	async func(f func())

	running bool
}

func New(s *session.Session, b Backend, o *Options) *Tui {
	if o == nil {
		o = &Options{}
	}

	t := &Tui{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		status:  tview.NewTextView().SetDynamicColors(true),
		picker:  NewFilterModal(),
		bus:     NewEventBus(),
		session: s,
		backend: b,
	}
	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.queue = func(f func()) { t.app.QueueUpdateDraw(f) }
	t.async = func(f func()) { go f() }

	scheduler := o.Scheduler
	if scheduler == nil {
		scheduler = &queueScheduler{queue: func(f func()) { t.queue(f) }}
	}
	t.wizard = wizard.New(s, &wizard.Options{
		Presenter:        t,
		Scheduler:        scheduler,
		AutoAdvanceDelay: o.AutoAdvanceDelay,
	})

	t.useCase = newUseCasePage(t)
	t.auth = newAuthPage(t)
	t.repositories = newRepositoriesPage(t)
	t.prompt = newPromptPage(t)
	t.results = newResultsPage(t)

	t.pages.
		AddPage(wizard.StageUseCase.Fragment(), t.useCase, true, true).
		AddPage(wizard.StageAuth.Fragment(), t.auth, true, false).
		AddPage(wizard.StageRepositories.Fragment(), t.repositories, true, false).
		AddPage(wizard.StagePrompt.Fragment(), t.prompt, true, false).
		AddPage(resultsPageName, t.results, true, false).
		AddPage(valuePickerPageName, t.picker, true, false)

	stepBar := tview.NewFlex()
	for _, stage := range wizard.Stages {
		stage := stage
		b := tview.NewButton(fmt.Sprintf("%d %s", stage, stage.Title()))
		b.SetSelectedFunc(func() {
			if !t.running {
				_ = t.wizard.ClickStep(stage)
			}
		})
		t.steps = append(t.steps, stepButton{stage: stage, button: b})
		stepBar.AddItem(b, 0, 1, false).AddItem(nil, 1, 0, false)
	}

	t.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(stepBar, 1, 0, false).
		AddItem(t.pages, 0, 1, true).
		AddItem(t.status, 1, 0, false)

	t.subscribe()
	t.app.SetInputCapture(t.capture)

	return t
}

func (t *Tui) Wizard() *wizard.Wizard {
	return t.wizard
}

func (t *Tui) subscribe() {
	t.bus.Subscribe(topicStatusInfo, func(data interface{}) {
		t.setStatus(escape(data.(string)), "")
	})
	t.bus.Subscribe(topicStatusError, func(data interface{}) {
		_, msg := client.Classify(data.(error))
		t.setStatus(escape(msg), "red")
	})
	t.bus.Subscribe(topicCatalogLoaded, func(data interface{}) {
		m := data.(catalogLoaded)
		msg := fmt.Sprintf("Loaded %d repositories of %s", m.Repositories, m.Organization)
		color := ""
		if m.Err != nil {
			_, reason := client.Classify(m.Err)
			msg = fmt.Sprintf("Loaded only %d repositories of %s: %s", m.Repositories, m.Organization, reason)
			color = "red"
		}
		if m.FellBack {
			msg += ". Custom properties unavailable, showing examples"
		}
		t.setStatus(escape(msg), color)
	})
	t.bus.Subscribe(topicWorkflowFinished, func(data interface{}) {
		m := data.(workflowFinished)
		if m.Err != nil {
			_, msg := client.Classify(m.Err)
			t.setStatus(escape(msg), "red")
			return
		}
		t.setStatus(escape(m.Summary.Message()), "")
	})
}

func (t *Tui) setStatus(msg, color string) {
	if msg == "" {
		t.status.SetText(fmt.Sprintf("[gray]%s", helpText))
		return
	}
	if color != "" {
		msg = fmt.Sprintf("[%s]%s", color, msg)
	}
	t.status.SetText(msg)
}

// Notify implements wizard.Presenter.
func (t *Tui) Notify(e wizard.Event) {
	switch e.Type {
	case wizard.EventStageEntered:
		t.show(e.Stage)
	case wizard.EventTransitionRejected:
		if errors.Is(e.Err, wizard.ErrTransitionInProgress) {
			return
		}
		t.bus.Publish(topicStatusError, e.Err)
	case wizard.EventSessionRestored:
		t.refresh()
	case wizard.EventReset:
		t.refresh()
		t.show(wizard.StageUseCase)
	}
}

func (t *Tui) show(stage wizard.Stage) {
	t.pages.SwitchToPage(stage.Fragment())
	t.renderSteps()
	t.setStatus("", "")

	var focus tview.Primitive
	switch stage {
	case wizard.StageUseCase:
		t.useCase.refresh(t)
		focus = t.useCase.focus()
	case wizard.StageAuth:
		t.auth.refresh(t)
		focus = t.auth.focus()
	case wizard.StageRepositories:
		t.repositories.enter(t)
		focus = t.repositories.focus()
	case wizard.StagePrompt:
		t.prompt.enter(t)
		focus = t.prompt.focus()
	}
	t.app.SetFocus(focus)
}

func (t *Tui) refresh() {
	t.useCase.refresh(t)
	t.auth.refresh(t)
	t.repositories.refresh(t)
	t.prompt.refresh(t)
}

func (t *Tui) renderSteps() {
	for _, s := range t.steps {
		label, bg := NormalColor, tcell.ColorDarkSlateGray
		switch {
		case s.stage == t.wizard.Stage():
			label, bg = tcell.ColorBlack, SelectedColor
		case s.stage > t.wizard.Reached():
			label = MutedColor
		}
		s.button.SetLabelColor(label)
		s.button.SetBackgroundColor(bg)
	}
}

func (t *Tui) inTextInput() bool {
	switch t.app.GetFocus().(type) {
	case *tview.InputField, *tview.TextArea:
		return true
	}

	return false
}

func (t *Tui) capture(event *tcell.EventKey) *tcell.EventKey {
	alt := event.Modifiers()&tcell.ModAlt != 0

	switch {
	case alt && (event.Key() == tcell.KeyRight || event.Key() == tcell.KeyLeft):
		inText := t.inTextInput()
		if !t.running {
			k := wizard.KeyNext
			if event.Key() == tcell.KeyLeft {
				k = wizard.KeyPrevious
			}
			_ = t.wizard.HandleKey(k, inText)
		}
		if inText {
			return event
		}
		return nil
	case event.Key() == tcell.KeyCtrlP:
		if !t.running {
			_ = t.wizard.HistoryBack()
		}
		return nil
	case event.Key() == tcell.KeyCtrlN:
		if !t.running {
			_ = t.wizard.HistoryForward()
		}
		return nil
	}

	return event
}

func (t *Tui) showValuePicker(p domain.Property, cb func(value string)) {
	t.picker.SetTitle(p.Name)
	items := propertyValueItems(p)
	t.picker.SetData(items, len(items) == 0, func(item *FilterModalItem) {
		t.pages.HidePage(valuePickerPageName)
		t.app.SetFocus(t.repositories.props.View)
		if item != nil {
			cb(item.Line)
		}
	})
	t.pages.ShowPage(valuePickerPageName)
	t.app.SetFocus(t.picker.Input())
}

// execute validates the session and runs the workflow in the background.
// Progress and the summary are published on the bus.
func (t *Tui) execute() {
	if t.running {
		return
	}

	sel := t.session.Selection()
	r := &workflow.Request{
		UseCase:      t.session.UseCase(),
		Organization: t.session.Organization(),
		Token:        t.session.Token(),
		Method:       sel.Method(),
		Repositories: sel.Repositories(),
		Properties:   sel.Properties(),
		Prompt:       t.session.Prompt(),
	}
	if err := workflow.Validate(r); err != nil {
		t.bus.Publish(topicStatusError, err)
		return
	}

	t.running = true
	t.results.start(r.Organization)
	t.pages.SwitchToPage(resultsPageName)
	t.app.SetFocus(t.results.focus())
	t.setStatus("Creating issues...", "yellow")

	t.async(func() {
		summary, err := t.backend.Run(t.ctx, r, func(done, total int, res workflow.Result) {
			t.queue(func() {
				t.bus.Publish(topicWorkflowProgress, workflowProgress{Done: done, Total: total, Result: res})
			})
		})
		if err != nil {
			log.Error().Err(err).Msg("workflow could not start")
		}

		t.queue(func() {
			t.running = false
			t.bus.Publish(topicWorkflowFinished, workflowFinished{Summary: summary, Err: err})
		})
	})
}

// Start shows the wizard, on the stage named by step when it can be
// entered, and blocks until the application stops.
func (t *Tui) Start(step string) error {
	defer t.cancel()

	t.start(step)

	return t.app.SetRoot(t.root, true).EnableMouse(true).Run()
}

func (t *Tui) start(step string) {
	if err := t.wizard.Start(step); err != nil {
		log.Info().Err(err).Str("step", step).Msg("requested step is not available yet")
	}
}
