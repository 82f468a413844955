package service

import (
	"context"
	"home-panel/internal/domain/model"
	"home-panel/internal/domain/translator"
	"home-panel/internal/ports"
	"log/slog"
	"time"
)

// Poller refreshes the sensor readings from the controller's /dht endpoint.
type Poller struct {
	controller ports.ControllerPort
	store      *Store
	interval   time.Duration
	telemetry  ports.Telemetry
	logger     *slog.Logger
}

func NewPoller(controller ports.ControllerPort, store *Store, interval time.Duration, telemetry ports.Telemetry, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = model.DefaultPollInterval
	}
	return &Poller{
		controller: controller,
		store:      store,
		interval:   interval,
		telemetry:  orNopTelemetry(telemetry),
		logger:     orDefaultLogger(logger),
	}
}

// Refresh runs one poll cycle. Failures are logged and swallowed.
func (p *Poller) Refresh(ctx context.Context) {
	reading, err := p.controller.FetchSensors(ctx)
	p.telemetry.PollCompleted(err)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("poll_failed", "error", err)
		}
		return
	}

	update, ok := translator.SensorUpdate(reading)
	if !ok {
		p.telemetry.SensorNotReady()
		p.logger.Debug("sensor_not_ready", "temp_null", reading.Temp == nil, "hum_null", reading.Hum == nil)
		return
	}
	p.store.Apply(update)
}

// Run polls once immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}
