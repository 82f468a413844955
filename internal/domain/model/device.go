package model

import (
	"errors"
	"fmt"
	"strings"
)

type Device string

const (
	DeviceLight Device = "light"
	DeviceFan   Device = "fan"
	DeviceDoor  Device = "door"
)

var ErrUnknownDevice = errors.New("unknown device")

// Devices lists the actuators in display order.
var Devices = []Device{DeviceLight, DeviceFan, DeviceDoor}

func ParseDevice(s string) (Device, error) {
	d := Device(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DeviceLight, DeviceFan, DeviceDoor:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDevice, s)
}

// CommandPath is the controller path that drives the device to the given state.
func (d Device) CommandPath(on bool) string {
	if on {
		return "/" + string(d) + "/on"
	}
	return "/" + string(d) + "/off"
}

// DeviceState is the last-known on/off value of each actuator.
type DeviceState struct {
	Light bool `json:"light"`
	Fan   bool `json:"fan"`
	Door  bool `json:"door"`
}

func (s DeviceState) Get(d Device) bool {
	switch d {
	case DeviceLight:
		return s.Light
	case DeviceFan:
		return s.Fan
	case DeviceDoor:
		return s.Door
	}
	return false
}

func (s DeviceState) With(d Device, on bool) DeviceState {
	switch d {
	case DeviceLight:
		s.Light = on
	case DeviceFan:
		s.Fan = on
	case DeviceDoor:
		s.Door = on
	}
	return s
}
