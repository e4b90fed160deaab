package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/google/uuid"
)

var defaultTitlePrefix = map[analysis.Locale]string{
	analysis.LocaleZH: "财务分析",
	analysis.LocaleEN: "Financial Analysis",
}

// DefaultTitle names an untitled analysis after the day it was saved.
func (s *Service) DefaultTitle(loc analysis.Locale) string {
	prefix, ok := defaultTitlePrefix[loc]
	if !ok {
		prefix = defaultTitlePrefix[analysis.DefaultLocale]
	}
	return fmt.Sprintf("%s - %s", prefix, s.now().Format("2006-01-02"))
}

// Analyze scores a snapshot without storing it.
func (s *Service) Analyze(snap analysis.Snapshot, loc analysis.Locale) models.Report {
	return models.NewReport(snap, loc)
}

// Save stores a snapshot for the user and announces it to workers. A failed
// announcement is logged and does not fail the save.
func (s *Service) Save(ctx context.Context, userID string, snap analysis.Snapshot, title string, loc analysis.Locale) (*models.AnalysisRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = s.DefaultTitle(loc)
	}
	rec := &models.AnalysisRecord{
		UserID:   userID,
		Title:    title,
		Locale:   loc,
		Snapshot: snap,
	}
	if err := s.repo.CreateAnalysis(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Infof("Analysis %s saved for user %s", rec.ID, userID)

	if s.publisher != nil {
		if err := s.publisher.PublishAnalysisSaved(ctx, rec.ID, userID); err != nil {
			s.log.Warnf("Failed to publish analysis %s: %v", rec.ID, err)
		}
	}
	return rec, nil
}

// Latest returns the user's newest record, or nil when there is none.
func (s *Service) Latest(ctx context.Context, userID string) (*models.AnalysisRecord, error) {
	rec, err := s.repo.LatestAnalysis(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// List returns the user's records newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.AnalysisSummary, error) {
	return s.repo.ListAnalyses(ctx, userID)
}

// Get returns one of the user's records. Records of other users are
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id string) (*models.AnalysisRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	rec, err := s.repo.GetAnalysis(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Delete removes one of the user's records and reports whether it existed.
func (s *Service) Delete(ctx context.Context, userID, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	ok, err := s.repo.DeleteAnalysis(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Infof("Analysis %s deleted by user %s", id, userID)
	}
	return ok, nil
}

// ReportFor loads one of the user's records and scores it in loc.
func (s *Service) ReportFor(ctx context.Context, userID, id string, loc analysis.Locale) (*models.AnalysisRecord, models.Report, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, models.Report{}, err
	}
	return rec, models.NewReport(rec.Snapshot, loc), nil
}
