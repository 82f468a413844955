package ports

import (
	"context"
	"home-panel/internal/domain/model"
)

// ControllerPort is the request/response side of the embedded controller.
type ControllerPort interface {
	FetchSensors(ctx context.Context) (model.DHTReading, error)
	SendCommand(ctx context.Context, device model.Device, on bool) error
}

// EventSource opens the controller's live event channel.
type EventSource interface {
	Dial(ctx context.Context) (EventStream, error)
}

// EventStream is one open live channel. ReadMessage blocks until a message
// arrives or the stream fails; Close unblocks it.
type EventStream interface {
	ReadMessage() ([]byte, error)
	Close() error
}
