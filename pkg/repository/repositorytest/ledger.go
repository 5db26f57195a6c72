package repositorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LedgerStore struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

func (s *LedgerStore) Create(_ context.Context, e *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = primitive.NewObjectID()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *LedgerStore) List(_ context.Context) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.LedgerEntry{}, s.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *LedgerStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Status = status
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

// AuditStore collects audit entries in memory.
type AuditStore struct {
	mu   sync.Mutex
	logs []repository.AuditLog
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) CreateAuditLog(_ context.Context, log *repository.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = primitive.NewObjectID()
	s.logs = append(s.logs, *log)
	return nil
}

// GetAuditLogs returns the newest limit entries for entityID.
func (s *AuditStore) GetAuditLogs(_ context.Context, entityID string, limit int64) ([]*repository.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*repository.AuditLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].EntityID != entityID {
			continue
		}
		l := s.logs[i]
		out = append(out, &l)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}
