package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gympoint/internal/auth"
	"gympoint/internal/config"
	"gympoint/internal/database"
	"gympoint/internal/handler"
	"gympoint/internal/logger"
	"gympoint/internal/metrics"
	"gympoint/internal/queue"
	"gympoint/internal/repository"
	"gympoint/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, cfg.LogLevel)
	log.WithField("env", cfg.Env).Info("starting gym-api")

	db, err := database.Open(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	mailer, closeQueue := newMailQueue(cfg.Redis, log)
	defer closeQueue()

	tokens := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TTL)
	m := metrics.New()

	students := repository.NewStudentRepository(db)
	plans := repository.NewPlanRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	orders := repository.NewHelpOrderRepository(db)
	users := repository.NewUserRepository(db)

	sessionService := service.NewSessionService(users, tokens, log)
	if err := sessionService.EnsureAdmin(context.Background(), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.WithError(err).Fatal("failed to seed admin user")
	}

	if err := os.MkdirAll(cfg.Import.Dir, os.ModePerm); err != nil {
		log.WithError(err).Fatal("failed to create uploads directory")
	}

	// Imports started by uploads stop with the server.
	importCtx, stopImports := context.WithCancel(context.Background())
	defer stopImports()

	router := handler.NewRouter(handler.Deps{
		Students:    handler.NewStudentHandler(service.NewStudentService(students, log), log),
		HelpOrders:  handler.NewHelpOrderHandler(service.NewHelpOrderService(orders, students, mailer, log), log),
		Plans:       handler.NewPlanHandler(service.NewPlanService(plans, log), log),
		Enrollments: handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollments, students, plans, mailer, log), log),
		Sessions:    handler.NewSessionHandler(sessionService, log),
		Imports: handler.NewImportHandler(importCtx, service.NewImportService(students, log), m,
			cfg.Import.Dir, cfg.Import.MaxUploadMB<<20, log),
		Tokens:         tokens,
		Metrics:        m,
		Log:            log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server")
	stopImports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("failed to shut down gracefully")
		return
	}
	log.Info("server stopped")
}

// newMailQueue returns the Redis queue, or a no-op queue when no Redis
// address is configured.
func newMailQueue(cfg config.Redis, log logrus.FieldLogger) (queue.Enqueuer, func()) {
	if cfg.Addr == "" {
		log.Warn("REDIS_ADDR not set, mails will not be sent")
		return queue.NewNoop(log), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis not reachable yet, mail jobs may be lost")
	}

	return queue.NewRedisQueue(rdb, cfg.Queue), func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("closing redis client")
		}
	}
}
