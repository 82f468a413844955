package service

import (
	"context"
	"errors"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNoPendingPrompt = errors.New("no pending prompt with that id")

type workflowState int

const (
	stateIdle workflowState = iota
	stateAwaiting
)

func (s workflowState) String() string {
	if s == stateAwaiting {
		return "awaiting_confirmation"
	}
	return "idle"
}

type workflowEvent int

const (
	eventMotion workflowEvent = iota
	eventAccept
	eventDecline
)

type transitionKey struct {
	from  workflowState
	event workflowEvent
}

// effects are collected under the lock and run after it is released, so a
// slow command never blocks the next motion event.
type effects struct {
	present     *model.Prompt
	turnOnLight bool
	answered    *bool
}

type transitionFunc func(c *Confirmation) (workflowState, effects)

var transitions = map[transitionKey]transitionFunc{
	{stateIdle, eventMotion}:      (*Confirmation).open,
	{stateAwaiting, eventMotion}:  (*Confirmation).reenter,
	{stateAwaiting, eventAccept}:  func(c *Confirmation) (workflowState, effects) { return c.resolve(true) },
	{stateAwaiting, eventDecline}: func(c *Confirmation) (workflowState, effects) { return c.resolve(false) },
}

type commandSender interface {
	Send(ctx context.Context, device model.Device, on bool) error
}

// Confirmation asks the operator whether to switch the light on after motion.
type Confirmation struct {
	mu      sync.Mutex
	state   workflowState
	pending *model.Prompt
	queued  int

	policy     model.PromptPolicy
	store      *Store
	dispatcher commandSender
	prompter   ports.Prompter
	telemetry  ports.Telemetry
	logger     *slog.Logger

	newID func() string
	now   func() time.Time
}

func NewConfirmation(store *Store, dispatcher commandSender, prompter ports.Prompter, policy model.PromptPolicy, telemetry ports.Telemetry, logger *slog.Logger) *Confirmation {
	if !policy.Valid() {
		policy = model.PromptPolicyQueue
	}
	return &Confirmation{
		policy:     policy,
		store:      store,
		dispatcher: dispatcher,
		prompter:   prompter,
		telemetry:  orNopTelemetry(telemetry),
		logger:     orDefaultLogger(logger),
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// MotionDetected feeds one motion signal into the workflow.
func (c *Confirmation) MotionDetected(ctx context.Context) {
	_ = c.fire(ctx, eventMotion, "")
}

// Answer resolves the open prompt. Dismissing counts as declining.
func (c *Confirmation) Answer(ctx context.Context, promptID string, accept bool) error {
	event := eventDecline
	if accept {
		event = eventAccept
	}
	return c.fire(ctx, event, promptID)
}

func (c *Confirmation) Pending() (model.Prompt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return model.Prompt{}, false
	}
	return *c.pending, true
}

func (c *Confirmation) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.String()
}

func (c *Confirmation) fire(ctx context.Context, event workflowEvent, promptID string) error {
	c.mu.Lock()
	if event != eventMotion && (c.pending == nil || c.pending.ID != promptID) {
		c.mu.Unlock()
		return ErrNoPendingPrompt
	}
	t, ok := transitions[transitionKey{c.state, event}]
	if !ok {
		c.mu.Unlock()
		return ErrNoPendingPrompt
	}
	from := c.state
	next, fx := t(c)
	c.state = next
	c.mu.Unlock()

	c.logger.Debug("confirmation_transition", "from", from, "to", next)
	c.run(ctx, fx)
	return nil
}

func (c *Confirmation) run(ctx context.Context, fx effects) {
	if fx.answered != nil {
		c.telemetry.PromptAnswered(*fx.answered)
		c.logger.Info("prompt_answered", "accepted", *fx.answered)
	}
	if fx.turnOnLight {
		c.store.Apply(model.Update{}.SetDevice(model.DeviceLight, true))
	}
	if fx.present != nil {
		c.telemetry.PromptPresented()
		c.logger.Info("prompt_presented", "prompt_id", fx.present.ID)
		if c.prompter != nil {
			c.prompter.Present(ctx, *fx.present)
		}
	}
	if fx.turnOnLight && c.dispatcher != nil {
		_ = c.dispatcher.Send(ctx, model.DeviceLight, true)
	}
}

func (c *Confirmation) open() (workflowState, effects) {
	p := model.Prompt{
		ID:        c.newID(),
		Title:     model.MotionPromptTitle,
		Message:   model.MotionPromptMessage,
		CreatedAt: c.now(),
	}
	c.pending = &p
	return stateAwaiting, effects{present: &p}
}

func (c *Confirmation) reenter() (workflowState, effects) {
	switch c.policy {
	case model.PromptPolicyIgnore:
		c.logger.Debug("motion_ignored_prompt_open")
		return stateAwaiting, effects{}
	case model.PromptPolicyReplace:
		return c.open()
	default:
		c.queued++
		return stateAwaiting, effects{}
	}
}

func (c *Confirmation) resolve(accepted bool) (workflowState, effects) {
	c.pending = nil
	fx := effects{turnOnLight: accepted, answered: &accepted}
	if c.queued > 0 {
		c.queued--
		_, next := c.open()
		fx.present = next.present
		return stateAwaiting, fx
	}
	return stateIdle, fx
}
