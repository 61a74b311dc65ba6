// Package metrics expone contadores Prometheus de los resultados del ledger.
package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/invoice-tracker/internal/application/ports"
)

var _ ports.OutcomeObserver = (*Metrics)(nil)

// Metrics contadores de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	Outcomes      *prometheus.CounterVec
	ReportsServed *prometheus.CounterVec
}

// EnteredCounter fuente del gauge de facturas dentro (ledger.Service.CountEntered).
type EnteredCounter func(ctx context.Context) (int, error)

// enteredReadTimeout tope de cada lectura hecha durante un scrape.
const enteredReadTimeout = 2 * time.Second

// New crea y registra todas las métricas (más las del proceso y del runtime de Go).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_tracker_outcomes_total",
			Help: "Resultados del ledger por operación y tipo",
		}, []string{"op", "kind"}),
		ReportsServed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_tracker_reports_total",
			Help: "Reportes generados por tipo",
		}, []string{"report"}),
	}
}

// ObserveOutcome incrementa el contador de resultados.
func (m *Metrics) ObserveOutcome(op, kind string) {
	m.Outcomes.WithLabelValues(op, kind).Inc()
}

// TrackEntered registra invoice_tracker_entered_invoices; cada scrape consulta el
// almacén. Un error de lectura se expone como NaN. Llamar una sola vez.
func (m *Metrics) TrackEntered(count EnteredCounter) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "invoice_tracker_entered_invoices",
		Help: "Facturas dentro (sin salida)",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), enteredReadTimeout)
		defer cancel()
		n, err := count(ctx)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	})
}

// ReportServed cuenta un reporte entregado ("weekly", "monthly", "weekly.pdf", ...).
func (m *Metrics) ReportServed(report string) {
	m.ReportsServed.WithLabelValues(report).Inc()
}

// Handler handler HTTP de exposición para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
