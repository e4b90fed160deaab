package service

import (
	"context"
	"errors"
	"time"

	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/sirupsen/logrus"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
)

// Publisher announces saved analyses to background workers.
type Publisher interface {
	PublishAnalysisSaved(ctx context.Context, recordID, userID string) error
}

// Service handles business logic
type Service struct {
	repo      repository.Store
	publisher Publisher
	log       *logrus.Logger
	config    *config.Config

	now          func() time.Time
	passwordCost int
}

// NewService initializes a new service. publisher may be nil.
func NewService(repo repository.Store, publisher Publisher, log *logrus.Logger, cfg *config.Config) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = 12
	}
	return &Service{
		repo:         repo,
		publisher:    publisher,
		log:          log,
		config:       cfg,
		now:          time.Now,
		passwordCost: cost,
	}
}

// Ping checks that storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

type ctxKey int

const userKey ctxKey = iota

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user stored by WithUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}
