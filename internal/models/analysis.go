package models

import (
	"time"

	"github.com/Dan9191/finhealth-service/internal/analysis"
)

// AnalysisRecord is a saved financial snapshot owned by one user
type AnalysisRecord struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Title     string            `json:"title"`
	Locale    analysis.Locale   `json:"locale"`
	Snapshot  analysis.Snapshot `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// AnalysisSummary is a list entry without the snapshot payload
type AnalysisSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
