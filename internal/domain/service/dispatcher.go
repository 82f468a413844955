package service

import (
	"context"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"log/slog"
	"time"
)

// Dispatcher sends fire-and-forget actuation commands. It owns the store's
// Busy flag: true while a request is in flight, false once it returns.
type Dispatcher struct {
	controller ports.ControllerPort
	store      *Store
	alerter    ports.Alerter
	timeout    time.Duration
	telemetry  ports.Telemetry
	logger     *slog.Logger
}

func NewDispatcher(controller ports.ControllerPort, store *Store, alerter ports.Alerter, timeout time.Duration, telemetry ports.Telemetry, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = model.DefaultCommandTimeout
	}
	return &Dispatcher{
		controller: controller,
		store:      store,
		alerter:    alerter,
		timeout:    timeout,
		telemetry:  orNopTelemetry(telemetry),
		logger:     orDefaultLogger(logger),
	}
}

// Send drives device to the requested state. Optimistic values already in the
// store are left alone on failure; the operator gets one alert instead.
func (d *Dispatcher) Send(ctx context.Context, device model.Device, on bool) error {
	d.store.Apply(model.Update{Busy: model.Bool(true)})
	defer d.store.Apply(model.Update{Busy: model.Bool(false)})

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.controller.SendCommand(ctx, device, on)
	d.telemetry.CommandCompleted(device, on, err)
	if err != nil {
		d.logger.Warn("command_failed", "device", device, "state", model.OnOff(on), "error", err)
		if d.alerter != nil && !d.store.Closed() {
			d.alerter.Alert(model.UnreachableAlertTitle, model.UnreachableAlertMessage)
		}
		return err
	}
	d.logger.Info("command_sent", "device", device, "state", model.OnOff(on))
	return nil
}
