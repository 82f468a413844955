package ports

import (
	"context"
	"home-panel/internal/domain/model"
)

// PanelPort is what the operator-facing surfaces drive.
type PanelPort interface {
	Snapshot() model.Snapshot
	Toggle(ctx context.Context, device model.Device) error
	Pending() (model.Prompt, bool)
	Answer(ctx context.Context, promptID string, accept bool) error
	ResetMotion()
	Alert() (model.Alert, bool)
	DismissAlert()
}
