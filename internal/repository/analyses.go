package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/google/uuid"
)

// CreateAnalysis stores a snapshot as a JSONB document
func (r *Repository) CreateAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	payload, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	query := `
		INSERT INTO financial_analyses (id, user_id, title, locale, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, rec.ID, rec.UserID, rec.Title, string(rec.Locale), payload).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

const analysisColumns = `id, user_id, title, locale, snapshot, created_at, updated_at`

func scanAnalysis(row *sql.Row) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{}
	var (
		locale  string
		payload []byte
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &locale, &payload, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", rec.ID, err)
	}
	rec.Locale = analysis.Locale(locale)
	return rec, nil
}

// LatestAnalysis returns the user's most recently created record
func (r *Repository) LatestAnalysis(ctx context.Context, userID string) (*models.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM financial_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	return scanAnalysis(r.db.QueryRowContext(ctx, query, userID))
}

// ListAnalyses returns the user's records newest first, without payloads
func (r *Repository) ListAnalyses(ctx context.Context, userID string) ([]models.AnalysisSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM financial_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []models.AnalysisSummary{}
	for rows.Next() {
		var s models.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// GetAnalysis returns one record owned by userID
func (r *Repository) GetAnalysis(ctx context.Context, userID, id string) (*models.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM financial_analyses WHERE id = $1 AND user_id = $2`
	return scanAnalysis(r.db.QueryRowContext(ctx, query, id, userID))
}

// GetAnalysisByID returns a record without an ownership check. Only
// background workers acting on already-authorized events use it.
func (r *Repository) GetAnalysisByID(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM financial_analyses WHERE id = $1`
	return scanAnalysis(r.db.QueryRowContext(ctx, query, id))
}

// DeleteAnalysis removes a record owned by userID and reports whether it existed
func (r *Repository) DeleteAnalysis(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM financial_analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return n > 0, nil
}
