package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/messaging"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/sirupsen/logrus"
)

type sentReport struct {
	to, username string
	report       models.Report
}

type fakeMailer struct {
	sent []sentReport
	err  error
}

func (m *fakeMailer) SendAnalysisReport(to, username string, rec *models.AnalysisRecord, r models.Report) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentReport{to, username, r})
	return nil
}

func newWorker(t *testing.T) (*worker, *repository.MemoryStore, *fakeMailer) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := repository.NewMemoryStore()
	mailer := &fakeMailer{}
	return &worker{store: store, mailer: mailer, log: log}, store, mailer
}

func saveFor(t *testing.T, store *repository.MemoryStore, email string, loc analysis.Locale) *models.AnalysisRecord {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: "u" + string(loc) + email, Email: email, PasswordHash: "x"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	rec := &models.AnalysisRecord{
		UserID:   user.ID,
		Title:    "t",
		Locale:   loc,
		Snapshot: analysis.Snapshot{AnnualSalary: 120000, AnnualLivingExpenses: 60000},
	}
	if err := store.CreateAnalysis(ctx, rec); err != nil {
		t.Fatalf("CreateAnalysis: %v", err)
	}
	return rec
}

func TestWorkerMailsInRecordLocale(t *testing.T) {
	w, store, mailer := newWorker(t)
	rec := saveFor(t, store, "en@example.com", analysis.LocaleEN)

	if err := w.handle(context.Background(), &messaging.AnalysisSavedMessage{RecordID: rec.ID}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "en@example.com" {
		t.Fatalf("expected one mail, got %+v", mailer.sent)
	}
	if mailer.sent[0].report.Locale != analysis.LocaleEN {
		t.Fatalf("expected English report, got %s", mailer.sent[0].report.Locale)
	}
}

func TestWorkerSkips(t *testing.T) {
	w, store, mailer := newWorker(t)
	noEmail := saveFor(t, store, "", analysis.LocaleZH)

	for _, id := range []string{noEmail.ID, "00000000-0000-0000-0000-000000000000", "not-a-uuid"} {
		if err := w.handle(context.Background(), &messaging.AnalysisSavedMessage{RecordID: id}); err != nil {
			t.Fatalf("handle(%s): %v", id, err)
		}
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no mail, got %+v", mailer.sent)
	}
}

func TestWorkerPropagatesMailErrors(t *testing.T) {
	w, store, mailer := newWorker(t)
	rec := saveFor(t, store, "zh@example.com", analysis.LocaleZH)
	mailer.err = errors.New("smtp down")

	if err := w.handle(context.Background(), &messaging.AnalysisSavedMessage{RecordID: rec.ID}); err == nil {
		t.Fatal("expected mail error so the message is requeued")
	}
}
