package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-center/internal/domain/reservations"
)

const reservationsFile = "reservas.json"

type reservationRecord struct {
	ID        string     `json:"id"`
	AnimalID  string     `json:"animal_id"`
	AdopterID string     `json:"adotante_id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"criada_em"`
	ExpiresAt time.Time  `json:"expira_em"`
	ClosedAt  *time.Time `json:"encerrada_em,omitempty"`
}

func toReservationRecord(r reservations.Reservation) reservationRecord {
	rec := reservationRecord{
		ID:        r.ID,
		AnimalID:  r.AnimalID,
		AdopterID: r.AdopterID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
	if r.ClosedAt != nil {
		t := *r.ClosedAt
		rec.ClosedAt = &t
	}
	return rec
}

func (rec reservationRecord) toDomain() reservations.Reservation {
	r := reservations.Reservation{
		ID:        rec.ID,
		AnimalID:  rec.AnimalID,
		AdopterID: rec.AdopterID,
		Status:    reservations.Status(rec.Status),
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}
	if rec.ClosedAt != nil {
		t := *rec.ClosedAt
		r.ClosedAt = &t
	}
	return r
}

type ReservationRepo struct {
	mu   sync.RWMutex
	path string
	byID map[string]reservationRecord
}

func NewReservationRepo(dataDir string) (*ReservationRepo, error) {
	r := &ReservationRepo{
		path: filepath.Join(dataDir, reservationsFile),
		byID: make(map[string]reservationRecord),
	}
	var recs []reservationRecord
	if err := loadFile(r.path, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.byID[rec.ID] = rec
	}
	return r, nil
}

func (r *ReservationRepo) persistLocked() error {
	recs := make([]reservationRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return saveFile(r.path, recs)
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
	r.byID[res.ID] = toReservationRecord(res)
	return r.persistLocked()
}

func (r *ReservationRepo) Update(ctx context.Context, res reservations.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[res.ID]; !exists {
		return reservations.ErrNotFound
	}
	r.byID[res.ID] = toReservationRecord(res)
	return r.persistLocked()
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *ReservationRepo) GetActiveByAnimal(ctx context.Context, animalID string) (reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		if rec.AnimalID == animalID && rec.Status == string(reservations.StatusActive) {
			return rec.toDomain(), nil
		}
	}
	return reservations.Reservation{}, reservations.ErrNotFound
}

func (r *ReservationRepo) ListActive(ctx context.Context) ([]reservations.Reservation, error) {
	return r.list(func(rec reservationRecord) bool {
		return rec.Status == string(reservations.StatusActive)
	})
}

func (r *ReservationRepo) ListByAnimal(ctx context.Context, animalID string) ([]reservations.Reservation, error) {
	return r.list(func(rec reservationRecord) bool {
		return rec.AnimalID == animalID
	})
}

func (r *ReservationRepo) List(ctx context.Context) ([]reservations.Reservation, error) {
	return r.list(func(reservationRecord) bool { return true })
}

func (r *ReservationRepo) HasActiveForAdopter(ctx context.Context, adopterID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		if rec.AdopterID == adopterID && rec.Status == string(reservations.StatusActive) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReservationRepo) list(keep func(reservationRecord) bool) ([]reservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []reservations.Reservation
	for _, rec := range r.byID {
		if keep(rec) {
			out = append(out, rec.toDomain())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
