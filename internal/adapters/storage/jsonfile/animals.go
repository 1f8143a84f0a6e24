package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-center/internal/domain/animals"
)

const animalsFile = "animais.json"

type animalEvent struct {
	Type    string    `json:"tipo"`
	Details string    `json:"detalhes"`
	At      time.Time `json:"timestamp"`
}

// animalRecord é a forma em disco do animal. Campos específicos de espécie
// aparecem como ponteiros para não poluir o JSON da outra espécie.
type animalRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"nome"`
	Breed        string        `json:"raca"`
	Species      string        `json:"especie"`
	Sex          string        `json:"sexo"`
	AgeMonths    int           `json:"idade_meses"`
	Size         string        `json:"porte"`
	Temperament  []string      `json:"temperamento,omitempty"`
	WalkNeed     *int          `json:"necessidade_passeio,omitempty"`
	Independence *int          `json:"independencia,omitempty"`
	Status       string        `json:"status"`
	RegisteredAt time.Time     `json:"data_entrada"`
	History      []animalEvent `json:"historico,omitempty"`
}

func toAnimalRecord(a animals.Animal) animalRecord {
	rec := animalRecord{
		ID:           a.ID,
		Name:         a.Name,
		Breed:        a.Breed,
		Species:      string(a.Species),
		Sex:          string(a.Sex),
		AgeMonths:    a.AgeMonths,
		Size:         string(a.Size),
		Temperament:  append([]string(nil), a.Temperament...),
		Status:       string(a.Status),
		RegisteredAt: a.RegisteredAt,
	}
	if a.Dog != nil {
		v := a.Dog.WalkNeed
		rec.WalkNeed = &v
	}
	if a.Cat != nil {
		v := a.Cat.Independence
		rec.Independence = &v
	}
	for _, e := range a.History {
		rec.History = append(rec.History, animalEvent{Type: e.Type, Details: e.Details, At: e.At})
	}
	return rec
}

func (rec animalRecord) toDomain() animals.Animal {
	a := animals.Animal{
		ID:           rec.ID,
		Name:         rec.Name,
		Breed:        rec.Breed,
		Species:      animals.Species(rec.Species),
		Sex:          animals.Sex(rec.Sex),
		AgeMonths:    rec.AgeMonths,
		Size:         animals.Size(rec.Size),
		Temperament:  append([]string(nil), rec.Temperament...),
		Status:       animals.Status(rec.Status),
		RegisteredAt: rec.RegisteredAt,
	}
	if rec.WalkNeed != nil {
		a.Dog = &animals.DogTraits{WalkNeed: *rec.WalkNeed}
	}
	if rec.Independence != nil {
		a.Cat = &animals.CatTraits{Independence: *rec.Independence}
	}
	for _, e := range rec.History {
		a.History = append(a.History, animals.Event{Type: e.Type, Details: e.Details, At: e.At})
	}
	return a
}

type AnimalRepo struct {
	mu   sync.RWMutex
	path string
	byID map[string]animalRecord
}

func NewAnimalRepo(dataDir string) (*AnimalRepo, error) {
	r := &AnimalRepo{
		path: filepath.Join(dataDir, animalsFile),
		byID: make(map[string]animalRecord),
	}
	var recs []animalRecord
	if err := loadFile(r.path, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.byID[rec.ID] = rec
	}
	return r, nil
}

func (r *AnimalRepo) persistLocked() error {
	recs := make([]animalRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].RegisteredAt.Before(recs[j].RegisteredAt) })
	return saveFile(r.path, recs)
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id required", animals.ErrInvalidInput)
	}
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", animals.ErrInvalidInput, a.ID)
	}
	r.byID[a.ID] = toAnimalRecord(a)
	return r.persistLocked()
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = toAnimalRecord(a)
	return r.persistLocked()
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *AnimalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, rec := range r.byID {
		a := rec.toDomain()
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.Species != nil && a.Species != *f.Species {
			continue
		}
		if f.Size != nil && a.Size != *f.Size {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}
