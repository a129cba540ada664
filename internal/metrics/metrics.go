package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tick outcomes.
const (
	TickSent         = "sent"
	TickNoUSD        = "no_usd"
	TickNoCrossRate  = "no_cross_rate"
	TickConvertError = "convert_error"
)

// Metrics is nil-safe: every method is a no-op on a nil receiver.
type Metrics struct {
	reg *prometheus.Registry

	TicksTotal          *prometheus.CounterVec
	SourceFailuresTotal *prometheus.CounterVec
	NotifyTotal         *prometheus.CounterVec
	QuoteToman          *prometheus.GaugeVec
	LiraToman           prometheus.Gauge
	TickDuration        prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		TicksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "peybot_ticks_total",
			Help: "Ticks by outcome",
		}, []string{"result"}),
		SourceFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "peybot_source_failures_total",
			Help: "Failed market-data fetches by currency",
		}, []string{"tag"}),
		NotifyTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "peybot_notify_total",
			Help: "Telegram posts by outcome",
		}, []string{"result"}),
		QuoteToman: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "peybot_quote_toman",
			Help: "Last published price per currency in tomans",
		}, []string{"tag"}),
		LiraToman: f.NewGauge(prometheus.GaugeOpts{
			Name: "peybot_lira_toman",
			Help: "Last derived lira price in tomans",
		}),
		TickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "peybot_tick_duration_seconds",
			Help:    "Wall time of one tick excluding the sleep",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) Tick(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.TicksTotal.WithLabelValues(result).Inc()
	m.TickDuration.Observe(took.Seconds())
}

func (m *Metrics) SourceFailure(tag string) {
	if m == nil {
		return
	}
	m.SourceFailuresTotal.WithLabelValues(tag).Inc()
}

func (m *Metrics) Notified(ok bool) {
	if m == nil {
		return
	}
	res := "ok"
	if !ok {
		res = "failed"
	}
	m.NotifyTotal.WithLabelValues(res).Inc()
}

func (m *Metrics) Published(display map[string]int64, lira int64) {
	if m == nil {
		return
	}
	for tag, v := range display {
		m.QuoteToman.WithLabelValues(tag).Set(float64(v))
	}
	m.LiraToman.Set(float64(lira))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server", "error", err)
	}
}
