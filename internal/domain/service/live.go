package service

import (
	"context"
	"home-panel/internal/domain/translator"
	"home-panel/internal/ports"
	"log/slog"
)

type motionListener interface {
	MotionDetected(ctx context.Context)
}

// LiveClient keeps one event channel to the controller open and merges every
// message into the store. A dropped channel is not redialled.
type LiveClient struct {
	source    ports.EventSource
	store     *Store
	motion    motionListener
	telemetry ports.Telemetry
	logger    *slog.Logger
}

func NewLiveClient(source ports.EventSource, store *Store, motion motionListener, telemetry ports.Telemetry, logger *slog.Logger) *LiveClient {
	return &LiveClient{
		source:    source,
		store:     store,
		motion:    motion,
		telemetry: orNopTelemetry(telemetry),
		logger:    orDefaultLogger(logger),
	}
}

// Handle merges one inbound message. Malformed payloads are logged and dropped.
// Device fields only mirror controller state; they never trigger a command.
func (l *LiveClient) Handle(ctx context.Context, payload []byte) {
	update, err := translator.DecodeEvent(payload)
	l.telemetry.EventReceived(err)
	if err != nil {
		l.logger.Warn("ws_message_malformed", "error", err, "bytes", len(payload))
		return
	}
	if l.store.Closed() {
		return
	}
	l.store.Apply(update)
	if update.Motion && l.motion != nil {
		l.motion.MotionDetected(ctx)
	}
}

// Run dials once and reads until the stream fails or ctx is cancelled.
func (l *LiveClient) Run(ctx context.Context) {
	stream, err := l.source.Dial(ctx)
	if err != nil {
		l.logger.Warn("ws_connect_failed", "error", err)
		return
	}
	l.logger.Info("ws_connected")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = stream.Close()
	}()

	for {
		payload, err := stream.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				l.logger.Warn("ws_closed", "error", err)
			} else {
				l.logger.Info("ws_closed")
			}
			return
		}
		l.Handle(ctx, payload)
	}
}
