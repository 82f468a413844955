package metrics

import (
	"home-panel/internal/domain/model"

	"github.com/prometheus/client_golang/prometheus"
)

type snapshotCollector struct {
	source func() model.Snapshot

	temperature *prometheus.Desc
	humidity    *prometheus.Desc
	motion      *prometheus.Desc
	device      *prometheus.Desc
	busy        *prometheus.Desc
}

func newSnapshotCollector(source func() model.Snapshot) *snapshotCollector {
	return &snapshotCollector{
		source:      source,
		temperature: prometheus.NewDesc("home_panel_temperature_celsius", "Last temperature reported by the controller.", nil, nil),
		humidity:    prometheus.NewDesc("home_panel_humidity_percent", "Last relative humidity reported by the controller.", nil, nil),
		motion:      prometheus.NewDesc("home_panel_motion_detected", "1 once motion has been reported.", nil, nil),
		device:      prometheus.NewDesc("home_panel_device_on", "Displayed device state (1=on).", []string{"device"}, nil),
		busy:        prometheus.NewDesc("home_panel_command_in_flight", "1 while a command is in flight.", nil, nil),
	}
}

func (c *snapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.humidity
	ch <- c.motion
	ch <- c.device
	ch <- c.busy
}

// Collect skips sensor gauges that have no reading yet.
func (c *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source()
	if snap.Sensors.Temperature != nil {
		ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, *snap.Sensors.Temperature)
	}
	if snap.Sensors.Humidity != nil {
		ch <- prometheus.MustNewConstMetric(c.humidity, prometheus.GaugeValue, *snap.Sensors.Humidity)
	}
	ch <- prometheus.MustNewConstMetric(c.motion, prometheus.GaugeValue, boolValue(snap.Sensors.MotionDetected))
	for _, d := range model.Devices {
		ch <- prometheus.MustNewConstMetric(c.device, prometheus.GaugeValue, boolValue(snap.Devices.Get(d)), string(d))
	}
	ch <- prometheus.MustNewConstMetric(c.busy, prometheus.GaugeValue, boolValue(snap.Busy))
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
