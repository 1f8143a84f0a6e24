package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-adoption-center/internal/domain/reservations"
)

type ReservationRepo struct {
	mu   sync.RWMutex
	byID map[string]reservations.Reservation
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{byID: make(map[string]reservations.Reservation)}
}

func (r *ReservationRepo) Create(ctx context.Context, res reservations.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(res.ID) == "" {
		return fmt.Errorf("%w: id required", reservations.ErrInvalidInput)
	}
	if _, exists := r.byID[res.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", reservations.ErrInvalidInput, res.ID)
	}
	r.byID[res.ID] = cloneReservation(res)
	return nil
}

func (r *ReservationRepo) Update(ctx context.Context, res reservations.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[res.ID]; !exists {
		return reservations.ErrNotFound
	}
	r.byID[res.ID] = cloneReservation(res)
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepo) GetActiveByAnimal(ctx context.Context, animalID string) (reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.byID {
		if res.AnimalID == animalID && res.Status == reservations.StatusActive {
			return cloneReservation(res), nil
		}
	}
	return reservations.Reservation{}, reservations.ErrNotFound
}

func (r *ReservationRepo) ListActive(ctx context.Context) ([]reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []reservations.Reservation
	for _, res := range r.byID {
		if res.Status == reservations.StatusActive {
			out = append(out, cloneReservation(res))
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *ReservationRepo) ListByAnimal(ctx context.Context, animalID string) ([]reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []reservations.Reservation
	for _, res := range r.byID {
		if res.AnimalID == animalID {
			out = append(out, cloneReservation(res))
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *ReservationRepo) List(ctx context.Context) ([]reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reservations.Reservation, 0, len(r.byID))
	for _, res := range r.byID {
		out = append(out, cloneReservation(res))
	}
	sortByCreation(out)
	return out, nil
}

func (r *ReservationRepo) HasActiveForAdopter(ctx context.Context, adopterID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.byID {
		if res.AdopterID == adopterID && res.Status == reservations.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func sortByCreation(rs []reservations.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].CreatedAt.Before(rs[j].CreatedAt)
	})
}

func cloneReservation(res reservations.Reservation) reservations.Reservation {
	c := res
	if res.ClosedAt != nil {
		t := *res.ClosedAt
		c.ClosedAt = &t
	}
	return c
}
