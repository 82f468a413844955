package service

import (
	"home-panel/internal/domain/model"
	"sync"
	"time"
)

// AlertBox keeps the one alert the panel shows. A new alert replaces the old.
type AlertBox struct {
	mu      sync.RWMutex
	current *model.Alert
	now     func() time.Time
}

func NewAlertBox() *AlertBox {
	return &AlertBox{now: time.Now}
}

func (b *AlertBox) Alert(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &model.Alert{Title: title, Message: message, RaisedAt: b.now()}
}

func (b *AlertBox) Current() (model.Alert, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.current == nil {
		return model.Alert{}, false
	}
	return *b.current, true
}

func (b *AlertBox) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
