// ABOUTME: Prometheus collectors for note playback
// ABOUTME: Counts notes, silent requests, pulled bytes and table rebuilds
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "notewave"

// Metrics holds the playback collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	notesStarted  *prometheus.CounterVec
	notesSilent   *prometheus.CounterVec
	bytesPulled   *prometheus.CounterVec
	tableRebuilds prometheus.Counter
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		notesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_started_total",
			Help:      "Notes that selected a sample and began playback.",
		}, []string{"instrument"}),
		notesSilent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_silent_total",
			Help:      "Note requests with no populated sample slot.",
		}, []string{"instrument"}),
		bytesPulled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_pulled_total",
			Help:      "Budget bytes consumed by the audio output.",
		}, []string{"instrument"}),
		tableRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_rebuilds_total",
			Help:      "Pitch ratio table builds, including the first.",
		}),
	}

	m.registry.MustRegister(
		m.notesStarted,
		m.notesSilent,
		m.bytesPulled,
		m.tableRebuilds,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// NoteStarted records a BeginPlayback result
func (m *Metrics) NoteStarted(instrument string, ok bool) {
	if ok {
		m.notesStarted.WithLabelValues(instrument).Inc()
	} else {
		m.notesSilent.WithLabelValues(instrument).Inc()
	}
}

// BytesPulled returns a pull hook counting bytes for instrument
func (m *Metrics) BytesPulled(instrument string) func(n int) {
	c := m.bytesPulled.WithLabelValues(instrument)
	return func(n int) { c.Add(float64(n)) }
}

// TableRebuilt returns a table hook counting rebuilds
func (m *Metrics) TableRebuilt() func(minOffset, maxOffset int) {
	return func(int, int) { m.tableRebuilds.Inc() }
}
