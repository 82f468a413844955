package service

import (
	"context"
	"errors"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrAlreadyMounted = errors.New("panel already mounted")
	ErrPanelClosed    = errors.New("panel has been unmounted")
)

// Panel is the control screen: it owns the poll ticker and the live channel
// for as long as it is mounted, and routes operator input to the dispatcher.
type Panel struct {
	store        *Store
	alerts       *AlertBox
	poller       *Poller
	live         *LiveClient
	dispatcher   *Dispatcher
	confirmation *Confirmation
	logger       *slog.Logger

	mu      sync.Mutex
	mounted bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewPanel(controller ports.ControllerPort, source ports.EventSource, prompter ports.Prompter, cfg model.Config, telemetry ports.Telemetry, logger *slog.Logger) *Panel {
	logger = orDefaultLogger(logger)
	store := NewStore()
	alerts := NewAlertBox()
	dispatcher := NewDispatcher(controller, store, alerts, time.Duration(cfg.CommandTimeout), telemetry, logger.With("component", "dispatcher"))
	confirmation := NewConfirmation(store, dispatcher, prompter, cfg.PromptPolicy, telemetry, logger.With("component", "confirmation"))
	return &Panel{
		store:        store,
		alerts:       alerts,
		poller:       NewPoller(controller, store, time.Duration(cfg.PollInterval), telemetry, logger.With("component", "poller")),
		live:         NewLiveClient(source, store, confirmation, telemetry, logger.With("component", "live")),
		dispatcher:   dispatcher,
		confirmation: confirmation,
		logger:       logger,
	}
}

func (p *Panel) Store() *Store { return p.store }

// Mount starts polling and opens the live channel.
func (p *Panel) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store.Closed() {
		return ErrPanelClosed
	}
	if p.mounted {
		return ErrAlreadyMounted
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mounted = true

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.poller.Run(ctx)
	}()
	go func() {
		defer p.wg.Done()
		p.live.Run(ctx)
	}()
	p.logger.Info("panel_mounted")
	return nil
}

// Unmount stops the ticker, closes the live channel and releases the store.
// Commands still in flight finish on their own; their writes are dropped.
func (p *Panel) Unmount() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		p.store.Close()
		return
	}
	p.mounted = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
	p.store.Close()
	p.logger.Info("panel_unmounted")
}

func (p *Panel) Snapshot() model.Snapshot {
	return p.store.Snapshot()
}

// Toggle is the tap handler: flip optimistically, then dispatch.
func (p *Panel) Toggle(ctx context.Context, device model.Device) error {
	if _, err := model.ParseDevice(string(device)); err != nil {
		return err
	}
	next, ok := p.store.Toggle(device)
	if !ok {
		return ErrPanelClosed
	}
	return p.dispatcher.Send(ctx, device, next)
}

func (p *Panel) Pending() (model.Prompt, bool) {
	return p.confirmation.Pending()
}

func (p *Panel) Answer(ctx context.Context, promptID string, accept bool) error {
	return p.confirmation.Answer(ctx, promptID, accept)
}

// ResetMotion re-arms the motion indicator. The wire never clears it.
func (p *Panel) ResetMotion() {
	p.store.Apply(model.Update{ClearMotion: true})
}

func (p *Panel) Alert() (model.Alert, bool) {
	return p.alerts.Current()
}

func (p *Panel) DismissAlert() {
	p.alerts.Dismiss()
}
