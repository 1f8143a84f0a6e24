package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-adoption-center/internal/domain/adopters"
)

type AdopterRepo struct {
	mu   sync.RWMutex
	byID map[string]adopters.Adopter
}

func NewAdopterRepo() *AdopterRepo {
	return &AdopterRepo{byID: make(map[string]adopters.Adopter)}
}

func (r *AdopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id required", adopters.ErrInvalidInput)
	}
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", adopters.ErrInvalidInput, a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AdopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return adopters.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AdopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adopters.Adopter{}, adopters.ErrNotFound
	}
	return a, nil
}

func (r *AdopterRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adopters.Adopter, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
