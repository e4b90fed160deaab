package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/handler"
	"github.com/Dan9191/finhealth-service/internal/integrations/llm"
	"github.com/Dan9191/finhealth-service/internal/messaging"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/Dan9191/finhealth-service/internal/scheduler"
	"github.com/Dan9191/finhealth-service/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize storage
	var store repository.Store
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		store = repository.NewMemoryStore()
	default:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		if err := repository.RunMigrations(db); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		store = repository.NewRepository(db)
	}

	// Optional integrations
	var publisher service.Publisher
	if cfg.AMQPURL != "" {
		client, err := messaging.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to AMQP: %v", err)
		}
		defer client.Close()
		publisher = client
	} else {
		logger.Info("AMQP_URL not set; saved analyses will not be announced")
	}

	var chat handler.ChatStreamer
	if cfg.LLMAPIKey != "" {
		client := llm.NewClient(cfg, logger)
		logger.Infof("Chat assistant enabled with model %s", client.Model())
		chat = client
	} else {
		logger.Info("LLM_API_KEY not set; chat assistant disabled")
	}

	// Initialize layers
	svc := service.NewService(store, publisher, logger, cfg)
	h := handler.NewHandler(svc, chat, logger, cfg)

	sched := scheduler.New(logger)
	if err := sched.SchedulePurge(cfg.SessionPurgeSchedule, svc); err != nil {
		logger.Fatalf("Failed to schedule session purge: %v", err)
	}
	sched.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     h.Router(),
		ReadTimeout: 10 * time.Second,
		// Chat responses stream for as long as the model talks.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
