// Package wizard drives the four-stage flow: use case, authentication,
// repository selection and prompt. Every transition is gated on the session
// state and recorded in a History together with a session snapshot so that
// navigating back and forth restores what was entered.
//
// A Wizard is not safe for concurrent use. Presenters call it from a single
// UI goroutine and hop scheduled callbacks back onto that goroutine.
package wizard

import (
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultAutoAdvanceDelay = 500 * time.Millisecond

var (
	ErrTransitionInProgress = errors.New("another stage transition is in progress")
	ErrUnknownStage         = errors.New("unknown stage")
	ErrStageNotReached      = errors.New("stage was not reached yet")
)

type Key int

const (
	KeyNext Key = iota
	KeyPrevious
)

type Options struct {
	History          History
	Presenter        Presenter
	Scheduler        Scheduler
	AutoAdvanceDelay time.Duration
}

type Wizard struct {
	session   *session.Session
	history   History
	presenter Presenter
	scheduler Scheduler
	delay     time.Duration

	stage   Stage
	reached Stage

	transitioning bool
	restoring     bool
	cancelAdvance func()
}

func New(s *session.Session, o *Options) *Wizard {
	if o == nil {
		o = &Options{}
	}
	w := &Wizard{
		session:   s,
		history:   o.History,
		presenter: o.Presenter,
		scheduler: o.Scheduler,
		delay:     o.AutoAdvanceDelay,
		stage:     StageUseCase,
		reached:   StageUseCase,
	}
	if w.history == nil {
		w.history = NewMemoryHistory()
	}
	if w.presenter == nil {
		w.presenter = nopPresenter{}
	}
	if w.scheduler == nil {
		w.scheduler = TimerScheduler
	}
	if w.delay <= 0 {
		w.delay = DefaultAutoAdvanceDelay
	}

	return w
}

func (w *Wizard) Session() *session.Session {
	return w.session
}

func (w *Wizard) Stage() Stage {
	return w.stage
}

// Reached returns the furthest stage entered so far.
func (w *Wizard) Reached() Stage {
	return w.reached
}

func (w *Wizard) SetPresenter(p Presenter) {
	w.presenter = p
}

// CanEnter reports the first unmet prerequisite of stage as a *GateError.
func (w *Wizard) CanEnter(stage Stage) error {
	return gate(w.session, stage)
}

func gate(s *session.Session, stage Stage) error {
	if !stage.IsValid() {
		return ErrUnknownStage
	}
	if stage >= StageAuth && s.UseCase() == "" {
		return &GateError{Stage: stage, Requirement: "use case selection"}
	}
	if stage >= StageRepositories && !s.HasCredentials() {
		return &GateError{Stage: stage, Requirement: "authentication"}
	}
	if stage >= StagePrompt && !s.Selection().HasEffectiveSelection() {
		return &GateError{Stage: stage, Requirement: "repository selection"}
	}

	return nil
}

// Start records the first history entry and optionally jumps to the stage
// named by fragment. A gated or unknown fragment leaves the wizard on the
// first stage.
func (w *Wizard) Start(fragment string) error {
	w.history.Replace(w.entry(StageUseCase))
	w.presenter.Notify(Event{Type: EventStageEntered, Stage: StageUseCase})

	if fragment == "" {
		return nil
	}

	return w.FragmentChanged(fragment)
}

func (w *Wizard) GoTo(stage Stage) error {
	if w.transitioning {
		return w.reject(stage, ErrTransitionInProgress)
	}
	if err := w.CanEnter(stage); err != nil {
		return w.reject(stage, err)
	}

	w.transitioning = true
	defer func() { w.transitioning = false }()

	w.enter(stage)
	if stage == StageUseCase {
		w.history.Replace(w.entry(stage))
	} else {
		w.history.Push(w.entry(stage))
	}
	w.presenter.Notify(Event{Type: EventStageEntered, Stage: stage})

	return nil
}

func (w *Wizard) Next() error {
	if w.stage >= StagePrompt {
		return nil
	}

	return w.GoTo(w.stage + 1)
}

func (w *Wizard) Back() error {
	if w.stage <= StageUseCase {
		return nil
	}

	return w.GoTo(w.stage - 1)
}

// ClickStep jumps to a step indicator. Only steps reached before respond.
func (w *Wizard) ClickStep(stage Stage) error {
	if !stage.IsValid() {
		return w.reject(stage, ErrUnknownStage)
	}
	if stage > w.reached {
		return w.reject(stage, ErrStageNotReached)
	}

	return w.GoTo(stage)
}

// HandleKey handles the modifier+arrow shortcuts. They are ignored while a
// text input has focus so they keep their editing meaning there.
func (w *Wizard) HandleKey(k Key, inTextInput bool) error {
	if inTextInput {
		return nil
	}

	switch k {
	case KeyNext:
		return w.Next()
	case KeyPrevious:
		return w.Back()
	}

	return nil
}

// SelectUseCase records the choice and, when nothing was typed on the
// authentication stage yet, advances to it after the auto-advance delay.
func (w *Wizard) SelectUseCase(u domain.UseCase) error {
	if err := w.session.SetUseCase(u); err != nil {
		return err
	}
	if w.restoring || w.stage != StageUseCase {
		return nil
	}
	if w.session.OrganizationInput() != "" || w.session.TokenInput() != "" {
		return nil
	}

	w.stopAutoAdvance()
	w.cancelAdvance = w.scheduler.After(w.delay, func() {
		w.cancelAdvance = nil
		if w.stage != StageUseCase || w.session.UseCase() == "" {
			return
		}
		if err := w.Next(); err != nil {
			log.Debug().Err(err).Msg("auto-advance skipped")
		}
	})

	return nil
}

// PopState applies a history entry: the snapshot is restored into the
// session and its stage re-validated. An entry whose stage cannot be
// entered is replaced by the current stage.
func (w *Wizard) PopState(e Entry) error {
	if w.transitioning {
		return w.reject(e.Stage, ErrTransitionInProgress)
	}

	w.transitioning = true
	w.restoring = true
	defer func() {
		w.transitioning = false
		w.restoring = false
	}()

	w.stopAutoAdvance()

	var restored *session.Snapshot
	if e.State != "" {
		sn, err := session.DecodeSnapshot(e.State)
		if err != nil {
			log.Warn().Err(err).Str("stage", e.Stage.Fragment()).Msg("ignoring unreadable history state")
		} else {
			restored = &sn
		}
	}

	// the entry is checked against a scratch session so a rejected pop
	// leaves the current one untouched
	target := w.session
	if restored != nil {
		target = session.New()
		target.Restore(*restored)
	}
	if err := gate(target, e.Stage); err != nil {
		w.history.Replace(w.entry(w.stage))
		w.presenter.Notify(Event{Type: EventTransitionRejected, Stage: e.Stage, Err: err})
		return err
	}

	if restored != nil {
		w.session.Restore(*restored)
		w.presenter.Notify(Event{Type: EventSessionRestored, Stage: e.Stage})
	}
	w.enter(e.Stage)
	w.presenter.Notify(Event{Type: EventStageEntered, Stage: e.Stage})

	return nil
}

// FragmentChanged handles an externally requested stage. Unknown or gated
// fragments are normalized back to the current stage.
func (w *Wizard) FragmentChanged(fragment string) error {
	stage, ok := ParseFragment(fragment)
	if !ok {
		w.history.Replace(w.entry(w.stage))
		return w.reject(w.stage, errors.Wrapf(ErrUnknownStage, "fragment %q", fragment))
	}
	if stage == w.stage {
		return nil
	}

	if err := w.GoTo(stage); err != nil {
		w.history.Replace(w.entry(w.stage))
		return err
	}

	return nil
}

func (w *Wizard) HistoryBack() error {
	e, ok := w.history.Back()
	if !ok {
		return nil
	}

	return w.PopState(e)
}

func (w *Wizard) HistoryForward() error {
	e, ok := w.history.Forward()
	if !ok {
		return nil
	}

	return w.PopState(e)
}

// Reset wipes the session and returns to the first stage.
func (w *Wizard) Reset() {
	w.stopAutoAdvance()
	w.session.Reset()
	w.stage = StageUseCase
	w.reached = StageUseCase
	w.history.Replace(w.entry(StageUseCase))
	log.Info().Msg("wizard reset")
	w.presenter.Notify(Event{Type: EventReset, Stage: StageUseCase})
}

func (w *Wizard) enter(stage Stage) {
	w.stopAutoAdvance()
	w.stage = stage
	if stage > w.reached {
		w.reached = stage
	}
	log.Debug().Str("stage", stage.Fragment()).Msg("stage entered")
}

func (w *Wizard) reject(stage Stage, err error) error {
	log.Debug().Err(err).Str("stage", stage.Fragment()).Msg("transition rejected")
	w.presenter.Notify(Event{Type: EventTransitionRejected, Stage: stage, Err: err})

	return err
}

func (w *Wizard) entry(stage Stage) Entry {
	e := Entry{Stage: stage, Fragment: stage.Fragment()}

	state, err := w.session.Snapshot(int(stage)).Encode()
	if err != nil {
		log.Warn().Err(err).Msg("history entry recorded without state")
		return e
	}
	e.State = state

	return e
}

func (w *Wizard) stopAutoAdvance() {
	if w.cancelAdvance != nil {
		w.cancelAdvance()
		w.cancelAdvance = nil
	}
}
