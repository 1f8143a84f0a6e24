package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-center/internal/domain/waitlist"
)

const waitlistFile = "fila.json"

type waitlistRecord struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animal_id"`
	AdopterID  string    `json:"adotante_id"`
	Score      int       `json:"score"`
	EnqueuedAt time.Time `json:"entrada_em"`
}

func toWaitlistRecord(e waitlist.Entry) waitlistRecord {
	return waitlistRecord{
		ID:         e.ID,
		AnimalID:   e.AnimalID,
		AdopterID:  e.AdopterID,
		Score:      e.Score,
		EnqueuedAt: e.EnqueuedAt,
	}
}

func (rec waitlistRecord) toDomain() waitlist.Entry {
	return waitlist.Entry{
		ID:         rec.ID,
		AnimalID:   rec.AnimalID,
		AdopterID:  rec.AdopterID,
		Score:      rec.Score,
		EnqueuedAt: rec.EnqueuedAt,
	}
}

type waitKey struct {
	animalID  string
	adopterID string
}

type WaitlistRepo struct {
	mu      sync.RWMutex
	path    string
	entries map[waitKey]waitlistRecord
}

func NewWaitlistRepo(dataDir string) (*WaitlistRepo, error) {
	r := &WaitlistRepo{
		path:    filepath.Join(dataDir, waitlistFile),
		entries: make(map[waitKey]waitlistRecord),
	}
	var recs []waitlistRecord
	if err := loadFile(r.path, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.entries[waitKey{rec.AnimalID, rec.AdopterID}] = rec
	}
	return r, nil
}

func (r *WaitlistRepo) persistLocked() error {
	recs := make([]waitlistRecord, 0, len(r.entries))
	for _, rec := range r.entries {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].EnqueuedAt.Before(recs[j].EnqueuedAt) })
	return saveFile(r.path, recs)
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
	r.entries[key] = toWaitlistRecord(e)
	return r.persistLocked()
}

func (r *WaitlistRepo) Update(ctx context.Context, e waitlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waitKey{e.AnimalID, e.AdopterID}
	if _, exists := r.entries[key]; !exists {
		return fmt.Errorf("%w: entry not found", waitlist.ErrInvalidInput)
	}
	r.entries[key] = toWaitlistRecord(e)
	return r.persistLocked()
}

func (r *WaitlistRepo) Remove(ctx context.Context, animalID, adopterID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waitKey{animalID, adopterID}
	if _, exists := r.entries[key]; !exists {
		return false, nil
	}
	delete(r.entries, key)
	return true, r.persistLocked()
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
	for key, rec := range r.entries {
		if key.animalID == animalID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}
