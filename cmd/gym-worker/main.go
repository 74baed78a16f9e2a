package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gympoint/internal/config"
	"gympoint/internal/logger"
	"gympoint/internal/mail"
	"gympoint/internal/metrics"
	"gympoint/internal/queue"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, cfg.LogLevel)

	if cfg.Redis.Addr == "" {
		log.Fatal("REDIS_ADDR is required by the mail worker")
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()

	m := metrics.New()
	dispatcher := mail.NewDispatcher(mail.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From))
	worker := queue.NewWorker(queue.NewRedisQueue(rdb, cfg.Redis.Queue), dispatcher.Handle, cfg.Mail.Workers, log,
		queue.WithResultHook(func(job queue.Job, err error) {
			m.RecordMailJob(job.Kind, err)
		}),
	)

	metricsServer := &http.Server{
		Addr:              cfg.Mail.MetricsAddr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("queue", cfg.Redis.Queue).WithField("workers", cfg.Mail.Workers).Info("mail worker started")
	worker.Run(ctx)
	log.Info("mail worker draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("metrics server shutdown")
	}
	log.Info("mail worker stopped")
}
