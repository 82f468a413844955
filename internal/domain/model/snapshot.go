package model

// SensorReading holds the last-known environment values. Nil means no value
// has arrived yet. MotionDetected latches: nothing in the merge path clears it.
type SensorReading struct {
	Temperature    *float64 `json:"temperature"`
	Humidity       *float64 `json:"humidity"`
	MotionDetected bool     `json:"motion_detected"`
}

// Snapshot is an immutable copy of everything the panel shows.
type Snapshot struct {
	Devices DeviceState   `json:"devices"`
	Sensors SensorReading `json:"sensors"`
	Busy    bool          `json:"busy"`
}

// Update is a partial write. Nil fields are absent and leave the snapshot
// untouched; present fields overwrite regardless of the prior value.
type Update struct {
	Light       *bool
	Fan         *bool
	Door        *bool
	Temperature *float64
	Humidity    *float64
	Motion      bool
	ClearMotion bool
	Busy        *bool
}

func (u Update) IsEmpty() bool {
	return u.Light == nil && u.Fan == nil && u.Door == nil &&
		u.Temperature == nil && u.Humidity == nil &&
		!u.Motion && !u.ClearMotion && u.Busy == nil
}

// SetDevice returns u with the field for d set to on.
func (u Update) SetDevice(d Device, on bool) Update {
	switch d {
	case DeviceLight:
		u.Light = &on
	case DeviceFan:
		u.Fan = &on
	case DeviceDoor:
		u.Door = &on
	}
	return u
}

// Reduce merges u into s. It is the only place snapshots change.
func Reduce(s Snapshot, u Update) Snapshot {
	if u.Light != nil {
		s.Devices.Light = *u.Light
	}
	if u.Fan != nil {
		s.Devices.Fan = *u.Fan
	}
	if u.Door != nil {
		s.Devices.Door = *u.Door
	}
	if u.Temperature != nil {
		v := *u.Temperature
		s.Sensors.Temperature = &v
	}
	if u.Humidity != nil {
		v := *u.Humidity
		s.Sensors.Humidity = &v
	}
	if u.ClearMotion {
		s.Sensors.MotionDetected = false
	}
	if u.Motion {
		s.Sensors.MotionDetected = true
	}
	if u.Busy != nil {
		s.Busy = *u.Busy
	}
	return s
}

func Bool(v bool) *bool { return &v }

func Float(v float64) *float64 { return &v }

// DHTReading is the controller's /dht response. Either value may be null
// while the sensor warms up.
type DHTReading struct {
	Temp *float64 `json:"temp"`
	Hum  *float64 `json:"hum"`
}
