package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-center/internal/domain/adopters"
)

const adoptersFile = "adotantes.json"

type adopterRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Age         int       `json:"idade"`
	Housing     string    `json:"moradia"`
	HousingArea float64   `json:"area_moradia"`
	Experience  bool      `json:"experiencia"`
	HasChildren bool      `json:"tem_criancas"`
	OtherPets   bool      `json:"outros_animais"`
	CreatedAt   time.Time `json:"criado_em"`
	UpdatedAt   time.Time `json:"atualizado_em"`
}

func toAdopterRecord(a adopters.Adopter) adopterRecord {
	return adopterRecord{
		ID:          a.ID,
		Name:        a.Name,
		Age:         a.Age,
		Housing:     string(a.Housing),
		HousingArea: a.HousingArea,
		Experience:  a.Experience,
		HasChildren: a.HasChildren,
		OtherPets:   a.OtherPets,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (rec adopterRecord) toDomain() adopters.Adopter {
	return adopters.Adopter{
		ID:          rec.ID,
		Name:        rec.Name,
		Age:         rec.Age,
		Housing:     adopters.Housing(rec.Housing),
		HousingArea: rec.HousingArea,
		Experience:  rec.Experience,
		HasChildren: rec.HasChildren,
		OtherPets:   rec.OtherPets,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

type AdopterRepo struct {
	mu   sync.RWMutex
	path string
	byID map[string]adopterRecord
}

func NewAdopterRepo(dataDir string) (*AdopterRepo, error) {
	r := &AdopterRepo{
		path: filepath.Join(dataDir, adoptersFile),
		byID: make(map[string]adopterRecord),
	}
	var recs []adopterRecord
	if err := loadFile(r.path, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.byID[rec.ID] = rec
	}
	return r, nil
}

func (r *AdopterRepo) persistLocked() error {
	recs := make([]adopterRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return saveFile(r.path, recs)
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
	r.byID[a.ID] = toAdopterRecord(a)
	return r.persistLocked()
}

func (r *AdopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return adopters.ErrNotFound
	}
	r.byID[a.ID] = toAdopterRecord(a)
	return r.persistLocked()
}

func (r *AdopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return adopters.Adopter{}, adopters.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *AdopterRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adopters.Adopter, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec.toDomain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
