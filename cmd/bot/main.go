package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Armin-kho/peybot/internal/bot"
	"github.com/Armin-kho/peybot/internal/config"
	"github.com/Armin-kho/peybot/internal/logger"
	"github.com/Armin-kho/peybot/internal/metrics"
	"github.com/Armin-kho/peybot/internal/scheduler"
	"github.com/Armin-kho/peybot/internal/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// Shared by the scrapers, the ticker fetch and the bot.
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
		go m.Serve(ctx, cfg.MetricsAddr, lg)
	}

	src := sources.NewManager(client, cfg.CrossRateURL, lg, sources.WithParallel(cfg.ParallelFetch))
	notifier := bot.NewNotifier(client, cfg.BotToken, cfg.ChannelID, cfg.TelegramAPIEndpoint, lg)

	signature := ""
	if cfg.AppendChannelID {
		signature = cfg.ChannelID
	}
	sched := scheduler.New(src, notifier, lg,
		scheduler.WithInterval(cfg.TickInterval),
		scheduler.WithPaceFromStart(cfg.ParallelFetch),
		scheduler.WithSignature(signature),
		scheduler.WithMetrics(m),
	)

	lg.Info("▶️ peybot started", "every", cfg.TickInterval, "parallel_fetch", cfg.ParallelFetch)
	sched.Run(ctx)
	lg.Info("Shutting down...")
}
