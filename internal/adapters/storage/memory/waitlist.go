package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pet-adoption-center/internal/domain/waitlist"
)

type waitKey struct {
	animalID  string
	adopterID string
}

type WaitlistRepo struct {
	mu      sync.RWMutex
	entries map[waitKey]waitlist.Entry
}

func NewWaitlistRepo() *WaitlistRepo {
	return &WaitlistRepo{entries: make(map[waitKey]waitlist.Entry)}
}

func (r *WaitlistRepo) Add(ctx context.Context, e waitlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.AnimalID) == "" || strings.TrimSpace(e.AdopterID) == "" {
		return fmt.Errorf("%w: animal and adopter ids required", waitlist.ErrInvalidInput)
	}
	key := waitKey{e.AnimalID, e.AdopterID}
	if _, exists := r.entries[key]; exists {
		return waitlist.ErrDuplicateEntry
	}
	r.entries[key] = e
	return nil
}

func (r *WaitlistRepo) Update(ctx context.Context, e waitlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waitKey{e.AnimalID, e.AdopterID}
	if _, exists := r.entries[key]; !exists {
		return fmt.Errorf("%w: entry not found", waitlist.ErrInvalidInput)
	}
	r.entries[key] = e
	return nil
}

func (r *WaitlistRepo) Remove(ctx context.Context, animalID, adopterID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waitKey{animalID, adopterID}
	if _, exists := r.entries[key]; !exists {
		return false, nil
	}
	delete(r.entries, key)
	return true, nil
}

func (r *WaitlistRepo) ExistsFor(ctx context.Context, animalID, adopterID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[waitKey{animalID, adopterID}]
	return exists, nil
}

func (r *WaitlistRepo) ListByAnimal(ctx context.Context, animalID string) ([]waitlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []waitlist.Entry
	for key, e := range r.entries {
		if key.animalID == animalID {
			out = append(out, e)
		}
	}
	return out, nil
}
