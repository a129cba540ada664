package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Armin-kho/peybot/internal/items"
	"github.com/Armin-kho/peybot/internal/metrics"
	"github.com/Armin-kho/peybot/internal/rates"
	"github.com/Armin-kho/peybot/internal/render"
	"github.com/Armin-kho/peybot/internal/sources"
	"github.com/Armin-kho/peybot/internal/utils"
)

var ErrNoUSD = errors.New("no USD quote")

type Source interface {
	Quotes(ctx context.Context) sources.Snapshot
	CrossRate(ctx context.Context) (float64, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) bool
}

type Scheduler struct {
	src     Source
	notify  Notifier
	metrics *metrics.Metrics
	log     *slog.Logger

	interval  time.Duration
	fromStart bool
	signature string
}

type Option func(*Scheduler)

// WithInterval sets the pause after each tick (one minute by default).
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithPaceFromStart measures the interval from the start of each tick
// instead of from its end. Used when sources are fetched concurrently.
func WithPaceFromStart(on bool) Option {
	return func(s *Scheduler) { s.fromStart = on }
}

// WithSignature appends a trailing line to every message.
func WithSignature(sig string) Option {
	return func(s *Scheduler) { s.signature = sig }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func New(src Source, notifier Notifier, log *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		src:      src,
		notify:   notifier,
		log:      log.With("component", "scheduler"),
		interval: time.Minute,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run ticks until ctx is cancelled. A tick always finishes (or is skipped)
// before the pause for the next one starts.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		start := time.Now()
		_ = s.RunTick(ctx)

		select {
		case <-time.After(s.pause(time.Since(start))):
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) pause(took time.Duration) time.Duration {
	if !s.fromStart {
		return s.interval
	}
	return max(0, s.interval-took)
}

// RunTick collects, converts and publishes once. Every failure is logged
// here; the returned error only says why nothing was sent.
func (s *Scheduler) RunTick(ctx context.Context) error {
	start := utils.NowTehran()
	log := s.log.With("tick", uuid.NewString())
	log.Debug("tick", "at", utils.JalaliDateTime(start))

	snap := s.src.Quotes(ctx)
	for _, it := range items.All {
		if err, ok := snap.Failed[it.Tag]; ok {
			log.Warn(fmt.Sprintf("⚠️ دریافت %s ناموفق", it.Tag), "tag", it.Tag, "error", err)
			s.metrics.SourceFailure(string(it.Tag))
		}
	}

	if !snap.Has(items.USD) {
		log.Warn("⚠️ نرخ دلار پیدا نشد", "retry_in", s.interval)
		s.metrics.Tick(metrics.TickNoUSD, time.Since(start))
		return ErrNoUSD
	}

	cross, err := s.src.CrossRate(ctx)
	if err != nil {
		log.Warn("⚠️ خطا در دریافت USDT_TRY", "error", err, "retry_in", s.interval)
		s.metrics.Tick(metrics.TickNoCrossRate, time.Since(start))
		return fmt.Errorf("cross-rate: %w", err)
	}

	res, err := rates.Convert(snap, cross)
	if err != nil {
		log.Error("convert", "error", err, "cross_rate", cross)
		s.metrics.Tick(metrics.TickConvertError, time.Since(start))
		return err
	}
	log.Info("lira derived", "usdt_try", cross, "toman", utils.FormatInt(res.Lira))

	text := render.BuildMessage(res, s.signature)
	ok := s.notify.Notify(ctx, text)
	s.metrics.Notified(ok)

	display := make(map[string]int64, len(res.Display))
	for tag, v := range res.Display {
		display[string(tag)] = v
	}
	s.metrics.Published(display, res.Lira)
	s.metrics.Tick(metrics.TickSent, time.Since(start))
	return nil
}
