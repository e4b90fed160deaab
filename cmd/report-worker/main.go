// Command report-worker mails a report for every saved analysis whose owner
// has an email address.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/messaging"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/Dan9191/finhealth-service/internal/utils/email"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type reportMailer interface {
	SendAnalysisReport(to, username string, rec *models.AnalysisRecord, r models.Report) error
}

type worker struct {
	store  repository.Store
	mailer reportMailer
	log    *logrus.Logger
}

// handle loads the record and its owner and mails the report. Records that
// vanished and owners without an address are acknowledged and skipped.
func (w *worker) handle(ctx context.Context, msg *messaging.AnalysisSavedMessage) error {
	if _, err := uuid.Parse(msg.RecordID); err != nil {
		w.log.Warnf("Ignoring message with malformed record id %q", msg.RecordID)
		return nil
	}
	rec, err := w.store.GetAnalysisByID(ctx, msg.RecordID)
	if errors.Is(err, repository.ErrNotFound) {
		w.log.Warnf("Analysis %s no longer exists, skipping", msg.RecordID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load analysis: %w", err)
	}

	user, err := w.store.FindUserByID(ctx, rec.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		w.log.Warnf("Owner of analysis %s no longer exists, skipping", rec.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user.Email == "" {
		w.log.Debugf("User %s has no email, skipping analysis %s", user.ID, rec.ID)
		return nil
	}

	report := models.NewReport(rec.Snapshot, rec.Locale)
	return w.mailer.SendAnalysisReport(user.Email, user.Username, rec, report)
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if logLevel, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(logLevel)
	}

	if cfg.StorageBackend != config.BackendPostgres {
		logger.Fatalf("report-worker needs the %s backend, got %s", config.BackendPostgres, cfg.StorageBackend)
	}
	if cfg.AMQPURL == "" {
		logger.Fatal("AMQP_URL is required")
	}
	if !cfg.MailEnabled() {
		logger.Fatal("SMTP_HOST and SENDER_EMAIL are required")
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	client, err := messaging.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to AMQP: %v", err)
	}
	defer client.Close()

	w := &worker{
		store:  repository.NewRepository(db),
		mailer: email.NewSender(cfg, logger),
		log:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.ConsumeAnalysisSaved(ctx, w.handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Consumer stopped: %v", err)
	}
	logger.Info("Report worker stopped")
}
