package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/expedition0/lumen/pkg/beam"
)

var _ beam.Recorder = &Prometheus{}

// Prometheus records beam solves as Prometheus metrics.
type Prometheus struct {
	Solves       *prometheus.CounterVec
	Segments     prometheus.Histogram
	DamageEvents prometheus.Counter
	Bounces      prometheus.Histogram
}

// NewPrometheus registers the beam metrics with reg. A nil reg uses the
// default registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Prometheus{
		Solves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_beam_solves_total",
			Help: "Beam solves by how the trace ended",
		}, []string{"outcome"}),
		Segments: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lumen_beam_segments",
			Help:    "Segments per beam solve",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		DamageEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "lumen_beam_damage_events_total",
			Help: "Damage applications across all beam solves",
		}),
		Bounces: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lumen_beam_bounces",
			Help:    "Reflections and refractions per beam solve",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		}),
	}
}

func (p *Prometheus) Observe(r beam.Result) {
	p.Solves.WithLabelValues(r.Outcome.String()).Inc()
	p.Segments.Observe(float64(len(r.Segments)))
	p.Bounces.Observe(float64(r.Bounces))
	p.DamageEvents.Add(float64(len(r.Damage)))
}
