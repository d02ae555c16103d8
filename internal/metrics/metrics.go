package metrics

import (
	"net/http"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "event_board"

// Recorder exports store activity on its own registry.
type Recorder struct {
	registry       *prometheus.Registry
	loads          *prometheus.CounterVec
	saves          *prometheus.CounterVec
	bootstraps     *prometheus.CounterVec
	collectionSize *prometheus.GaugeVec
}

func New() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.loads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_loads_total",
		Help:      "Collection reads by load status.",
	}, []string{"collection", "status"})
	r.saves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_saves_total",
		Help:      "Successful collection writes.",
	}, []string{"collection"})
	r.bootstraps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_total",
		Help:      "Events bootstrap attempts by outcome.",
	}, []string{"outcome"})
	r.collectionSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collection_size",
		Help:      "Number of records seen in the last load or save.",
	}, []string{"collection"})

	r.registry.MustRegister(
		r.loads,
		r.saves,
		r.bootstraps,
		r.collectionSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveLoad(collection string, status domain.LoadStatus, size int) {
	r.loads.WithLabelValues(collection, string(status)).Inc()
	if status != domain.LoadUnavailable {
		r.collectionSize.WithLabelValues(collection).Set(float64(size))
	}
}

func (r *Recorder) ObserveSave(collection string, size int) {
	r.saves.WithLabelValues(collection).Inc()
	r.collectionSize.WithLabelValues(collection).Set(float64(size))
}

func (r *Recorder) ObserveBootstrap(outcome domain.BootstrapOutcome) {
	r.bootstraps.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
