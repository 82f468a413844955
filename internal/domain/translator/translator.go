// Package translator converts controller payloads into store updates.
package translator

import (
	"encoding/json"
	"errors"
	"fmt"
	"home-panel/internal/domain/model"
)

var ErrMalformed = errors.New("malformed controller payload")

// eventFrame is one inbound socket message. Every field is optional.
type eventFrame struct {
	Motion *bool    `json:"motion"`
	Light  *bool    `json:"light"`
	Fan    *bool    `json:"fan"`
	Door   *bool    `json:"door"`
	Temp   *float64 `json:"temp"`
	Hum    *float64 `json:"hum"`
}

// SensorUpdate turns a poll response into an update. It reports false when
// either value is still null, in which case nothing must be applied.
func SensorUpdate(r model.DHTReading) (model.Update, bool) {
	if r.Temp == nil || r.Hum == nil {
		return model.Update{}, false
	}
	return model.Update{
		Temperature: model.Float(*r.Temp),
		Humidity:    model.Float(*r.Hum),
	}, true
}

// DecodeEvent parses a socket message. motion:false is dropped on purpose:
// the wire never clears the motion latch.
func DecodeEvent(payload []byte) (model.Update, error) {
	var f eventFrame
	if err := json.Unmarshal(payload, &f); err != nil {
		return model.Update{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	u := model.Update{
		Light:       f.Light,
		Fan:         f.Fan,
		Door:        f.Door,
		Temperature: f.Temp,
		Humidity:    f.Hum,
	}
	if f.Motion != nil && *f.Motion {
		u.Motion = true
	}
	return u, nil
}
