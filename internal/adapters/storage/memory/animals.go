// Package memory traz repositórios em memória para desenvolvimento e testes.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-adoption-center/internal/domain/animals"
)

type AnimalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{byID: make(map[string]animals.Animal)}
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
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return cloneAnimal(a), nil
}

func (r *AnimalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.Species != nil && a.Species != *f.Species {
			continue
		}
		if f.Size != nil && a.Size != *f.Size {
			continue
		}
		out = append(out, cloneAnimal(a))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out, nil
}

// cloneAnimal evita que chamadores mutem o estado guardado por referência
// (slices de histórico e temperamento).
func cloneAnimal(a animals.Animal) animals.Animal {
	c := a
	c.Temperament = append([]string(nil), a.Temperament...)
	c.History = append([]animals.Event(nil), a.History...)
	if a.Dog != nil {
		dog := *a.Dog
		c.Dog = &dog
	}
	if a.Cat != nil {
		cat := *a.Cat
		c.Cat = &cat
	}
	return c
}
