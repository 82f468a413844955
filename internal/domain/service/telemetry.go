package service

import (
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"log/slog"
)

type nopTelemetry struct{}

func (nopTelemetry) PollCompleted(error)                        {}
func (nopTelemetry) SensorNotReady()                            {}
func (nopTelemetry) EventReceived(error)                        {}
func (nopTelemetry) CommandCompleted(model.Device, bool, error) {}
func (nopTelemetry) PromptPresented()                           {}
func (nopTelemetry) PromptAnswered(bool)                        {}

func orNopTelemetry(t ports.Telemetry) ports.Telemetry {
	if t == nil {
		return nopTelemetry{}
	}
	return t
}

func orDefaultLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
