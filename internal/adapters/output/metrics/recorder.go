package metrics

import (
	"home-panel/internal/domain/model"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts the outcomes of every network path of the panel.
type Recorder struct {
	registry *prometheus.Registry

	polls          *prometheus.CounterVec
	sensorNotReady prometheus.Counter
	events         *prometheus.CounterVec
	commands       *prometheus.CounterVec
	prompts        prometheus.Counter
	answers        *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "home_panel_polls_total",
			Help: "Sensor polls by result (ok, error).",
		}, []string{"result"}),
		sensorNotReady: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "home_panel_sensor_not_ready_total",
			Help: "Polls answered with a null temperature or humidity.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "home_panel_ws_messages_total",
			Help: "Live channel messages by result (ok, malformed).",
		}, []string{"result"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "home_panel_commands_total",
			Help: "Actuation commands by device, requested state and result.",
		}, []string{"device", "state", "result"}),
		prompts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "home_panel_prompts_presented_total",
			Help: "Motion confirmation prompts shown to the operator.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "home_panel_prompts_answered_total",
			Help: "Motion confirmation prompts answered, by answer (yes, no).",
		}, []string{"answer"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.polls,
		r.sensorNotReady,
		r.events,
		r.commands,
		r.prompts,
		r.answers,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WatchSnapshot exports the current panel state as gauges, read on every scrape.
func (r *Recorder) WatchSnapshot(source func() model.Snapshot) {
	r.registry.MustRegister(newSnapshotCollector(source))
}

func (r *Recorder) PollCompleted(err error) {
	r.polls.WithLabelValues(result(err, "error")).Inc()
}

func (r *Recorder) SensorNotReady() {
	r.sensorNotReady.Inc()
}

func (r *Recorder) EventReceived(err error) {
	r.events.WithLabelValues(result(err, "malformed")).Inc()
}

func (r *Recorder) CommandCompleted(device model.Device, on bool, err error) {
	r.commands.WithLabelValues(string(device), model.OnOff(on), result(err, "unreachable")).Inc()
}

func (r *Recorder) PromptPresented() {
	r.prompts.Inc()
}

func (r *Recorder) PromptAnswered(accepted bool) {
	answer := "no"
	if accepted {
		answer = "yes"
	}
	r.answers.WithLabelValues(answer).Inc()
}

func result(err error, failure string) string {
	if err != nil {
		return failure
	}
	return "ok"
}
