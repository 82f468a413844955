package model

import (
	"strconv"
	"strings"
)

const placeholder = "--"

func FormatValue(v *float64) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func OnOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// Lines renders the snapshot the way the panel screen shows it.
func (s Snapshot) Lines() []string {
	motion := "None"
	if s.Sensors.MotionDetected {
		motion = "Detected"
	}
	lines := []string{
		"Temperature: " + FormatValue(s.Sensors.Temperature) + "°C",
		"Humidity: " + FormatValue(s.Sensors.Humidity) + "%",
		"Motion: " + motion,
	}
	for _, d := range Devices {
		name := string(d)
		lines = append(lines, strings.ToUpper(name[:1])+name[1:]+": "+OnOff(s.Devices.Get(d)))
	}
	if s.Busy {
		lines = append(lines, "Communicating…")
	}
	return lines
}
