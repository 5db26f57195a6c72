package repositorytest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// ProfileCache stands in for the Redis profile cache.
type ProfileCache struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

func NewProfileCache() *ProfileCache {
	return &ProfileCache{profiles: make(map[string]models.UserProfile)}
}

func (c *ProfileCache) GetProfile(_ context.Context, email string) (*models.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.profiles[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (c *ProfileCache) SetProfile(_ context.Context, profile *models.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles[strings.ToLower(profile.Email)] = *profile
	return nil
}
