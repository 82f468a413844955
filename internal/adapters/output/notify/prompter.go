package notify

import (
	"context"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
)

// Fanout presents each prompt on every configured surface in order.
type Fanout []ports.Prompter

func (f Fanout) Present(ctx context.Context, prompt model.Prompt) {
	for _, p := range f {
		if p != nil {
			p.Present(ctx, prompt)
		}
	}
}
