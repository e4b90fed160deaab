package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/google/uuid"
)

type memoryAnalysis struct {
	rec models.AnalysisRecord
	seq int64
}

// MemoryStore keeps everything in process memory. It backs the memory
// storage backend and the service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      int64
	users    map[string]models.User
	sessions map[string]models.Session // by token
	analyses map[string]memoryAnalysis
}

// NewMemoryStore returns an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock returns an empty store stamping records with now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		now:      now,
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
		analyses: make(map[string]memoryAnalysis),
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return fmt.Errorf("failed to create user: %w", ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := m.now()
	user.CreatedAt, user.UpdatedAt = now, now
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user: %w", ErrNotFound)
}

func (m *MemoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *MemoryStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *MemoryStore) UpdateUserEmail(_ context.Context, id, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	if email != "" {
		for _, other := range m.users {
			if other.ID != id && other.Email == email {
				return fmt.Errorf("failed to update email: %w", ErrConflict)
			}
		}
	}
	u.Email = email
	u.UpdatedAt = m.now()
	m.users[id] = u
	return nil
}

func (m *MemoryStore) CreateSession(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.Token]; exists {
		return fmt.Errorf("failed to create session: %w", ErrConflict)
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.CreatedAt = m.now()
	m.sessions[session.Token] = *session
	return nil
}

func (m *MemoryStore) FindSessionByToken(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	return &s, nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CreateAnalysis(_ context.Context, rec *models.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := m.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	m.seq++
	m.analyses[rec.ID] = memoryAnalysis{rec: *rec, seq: m.seq}
	return nil
}

// owned returns userID's records newest first. Callers hold the lock.
func (m *MemoryStore) owned(userID string) []memoryAnalysis {
	var out []memoryAnalysis
	for _, a := range m.analyses {
		if a.rec.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].rec.CreatedAt.Equal(out[j].rec.CreatedAt) {
			return out[i].rec.CreatedAt.After(out[j].rec.CreatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

func (m *MemoryStore) LatestAnalysis(_ context.Context, userID string) (*models.AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.owned(userID)
	if len(recs) == 0 {
		return nil, fmt.Errorf("analysis: %w", ErrNotFound)
	}
	out := recs[0].rec
	return &out, nil
}

func (m *MemoryStore) ListAnalyses(_ context.Context, userID string) ([]models.AnalysisSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.AnalysisSummary{}
	for _, a := range m.owned(userID) {
		out = append(out, models.AnalysisSummary{
			ID:        a.rec.ID,
			Title:     a.rec.Title,
			CreatedAt: a.rec.CreatedAt,
			UpdatedAt: a.rec.UpdatedAt,
		})
	}
	return out, nil
}

func (m *MemoryStore) GetAnalysis(_ context.Context, userID, id string) (*models.AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[id]
	if !ok || a.rec.UserID != userID {
		return nil, fmt.Errorf("analysis: %w", ErrNotFound)
	}
	out := a.rec
	return &out, nil
}

func (m *MemoryStore) GetAnalysisByID(_ context.Context, id string) (*models.AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[id]
	if !ok {
		return nil, fmt.Errorf("analysis: %w", ErrNotFound)
	}
	out := a.rec
	return &out, nil
}

func (m *MemoryStore) DeleteAnalysis(_ context.Context, userID, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.analyses[id]
	if !ok || a.rec.UserID != userID {
		return false, nil
	}
	delete(m.analyses, id)
	return true, nil
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*MemoryStore)(nil)
)
