package ports

import (
	"context"
	"home-panel/internal/domain/model"
)

// Prompter shows a confirmation prompt to the operator.
type Prompter interface {
	Present(ctx context.Context, prompt model.Prompt)
}

// Alerter raises the single modal alert.
type Alerter interface {
	Alert(title, message string)
}

// Telemetry records outcomes of the network paths. Implementations must be
// safe for concurrent use.
type Telemetry interface {
	PollCompleted(err error)
	SensorNotReady()
	EventReceived(err error)
	CommandCompleted(device model.Device, on bool, err error)
	PromptPresented()
	PromptAnswered(accepted bool)
}
