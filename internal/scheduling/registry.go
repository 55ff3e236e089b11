package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrEmptyUserID = errors.New("user id is required")

// Registry owns one Session per user, created and seeded on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	seeds    SeedSource
	cfg      SessionConfig
}

func NewRegistry(seeds SeedSource, cfg SessionConfig) *Registry {
	if seeds == nil {
		seeds = EmptySeed
	}
	return &Registry{
		sessions: make(map[string]*Session),
		seeds:    seeds,
		cfg:      cfg,
	}
}

// ForUser returns the user's session, seeding it the first time it is asked for.
// A failed seed leaves no session behind so the next call retries.
func (r *Registry) ForUser(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		return s, nil
	}

	seed, err := r.seeds.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load seed for %s: %w", userID, err)
	}

	s := NewSession(userID, r.cfg)
	if err := s.Seed(seed); err != nil {
		return nil, err
	}

	r.sessions[userID] = s
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
