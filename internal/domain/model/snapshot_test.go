package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce_AbsentFieldsUnchanged(t *testing.T) {
	s := Snapshot{
		Devices: DeviceState{Light: true, Fan: true, Door: true},
		Sensors: SensorReading{Temperature: Float(21), Humidity: Float(40), MotionDetected: true},
		Busy:    true,
	}

	got := Reduce(s, Update{})
	assert.Equal(t, s, got)
}

func TestReduce_PresentFieldsOverwrite(t *testing.T) {
	s := Snapshot{Devices: DeviceState{Light: true, Fan: false, Door: true}}

	got := Reduce(s, Update{Light: Bool(false), Fan: Bool(true)})
	assert.False(t, got.Devices.Light)
	assert.True(t, got.Devices.Fan)
	assert.True(t, got.Devices.Door)

	got = Reduce(got, Update{Door: Bool(false), Temperature: Float(24.5)})
	assert.False(t, got.Devices.Door)
	assert.Equal(t, 24.5, *got.Sensors.Temperature)
	assert.Nil(t, got.Sensors.Humidity)
}

func TestReduce_MotionLatches(t *testing.T) {
	s := Reduce(Snapshot{}, Update{Motion: true})
	assert.True(t, s.Sensors.MotionDetected)

	s = Reduce(s, Update{Light: Bool(true)})
	assert.True(t, s.Sensors.MotionDetected)

	s = Reduce(s, Update{ClearMotion: true})
	assert.False(t, s.Sensors.MotionDetected)
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	temp := 20.0
	s := Reduce(Snapshot{}, Update{Temperature: &temp})
	temp = 99
	assert.Equal(t, 20.0, *s.Sensors.Temperature)
}

func TestUpdate_SetDevice(t *testing.T) {
	u := Update{}.SetDevice(DeviceFan, true)
	assert.Nil(t, u.Light)
	assert.Nil(t, u.Door)
	assert.True(t, *u.Fan)
	assert.False(t, u.IsEmpty())
	assert.True(t, Update{}.IsEmpty())
}

func TestSnapshot_Lines(t *testing.T) {
	s := Snapshot{}
	assert.Equal(t, []string{
		"Temperature: --°C",
		"Humidity: --%",
		"Motion: None",
		"Light: OFF",
		"Fan: OFF",
		"Door: OFF",
	}, s.Lines())

	s = Reduce(s, Update{Temperature: Float(24.5), Humidity: Float(60), Motion: true, Door: Bool(true), Busy: Bool(true)})
	lines := s.Lines()
	assert.Contains(t, lines, "Temperature: 24.5°C")
	assert.Contains(t, lines, "Humidity: 60%")
	assert.Contains(t, lines, "Motion: Detected")
	assert.Contains(t, lines, "Door: ON")
	assert.Equal(t, "Communicating…", lines[len(lines)-1])
}
