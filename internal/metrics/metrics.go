package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evm_wallet"

// Service owns a private prometheus registry so that several servers (tests)
// can live in one process.
type Service struct {
	registry        *prometheus.Registry
	feeQuotes       *prometheus.CounterVec
	feeDegradations *prometheus.CounterVec
	transfers       *prometheus.CounterVec
}

func New() (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		registry: registry,
		feeQuotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fee",
			Name:      "quotes_total",
			Help:      "Fee quotes handed out, by network tag and price source.",
		}, []string{"tag", "source"}),
		feeDegradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fee",
			Name:      "degradations_total",
			Help:      "Fee oracle fallbacks, by network tag and reason.",
		}, []string{"tag", "reason"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "submissions_total",
			Help:      "Transfer submissions, by asset kind and outcome.",
		}, []string{"asset", "outcome"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.feeQuotes,
		s.feeDegradations,
		s.transfers,
	} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return s, nil
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

func (s *Service) ObserveFeeQuote(tag string, source string) {
	if s == nil {
		return
	}
	s.feeQuotes.WithLabelValues(tag, source).Inc()
}

func (s *Service) ObserveFeeDegradation(tag string, reason string) {
	if s == nil {
		return
	}
	s.feeDegradations.WithLabelValues(tag, reason).Inc()
}

func (s *Service) ObserveTransfer(asset string, outcome string) {
	if s == nil {
		return
	}
	s.transfers.WithLabelValues(asset, outcome).Inc()
}
