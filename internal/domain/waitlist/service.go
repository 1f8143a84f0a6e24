package waitlist

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/compat"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("adopter already wait-listed for this animal")
)

type AnimalGetter interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type AdopterGetter interface {
	GetByID(ctx context.Context, id string) (adopters.Adopter, error)
}

type Scorer interface {
	Score(a adopters.Adopter, an animals.Animal) compat.Result
}

type Service struct {
	repo     Repository
	animals  AnimalGetter
	adopters AdopterGetter
	scorer   Scorer
	now      func() time.Time
}

func NewService(repo Repository, animalRepo AnimalGetter, adopterRepo AdopterGetter, scorer Scorer) *Service {
	return &Service{
		repo:     repo,
		animals:  animalRepo,
		adopters: adopterRepo,
		scorer:   scorer,
		now:      time.Now,
	}
}

// Enqueue coloca o adotante na fila do animal. O score de compatibilidade é
// calculado agora e congelado na entrada.
func (s *Service) Enqueue(ctx context.Context, animalID, adopterID string) (Entry, error) {
	animalID = strings.TrimSpace(animalID)
	adopterID = strings.TrimSpace(adopterID)
	if animalID == "" || adopterID == "" {
		return Entry{}, ErrInvalidInput
	}

	exists, err := s.repo.ExistsFor(ctx, animalID, adopterID)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrDuplicateEntry
	}

	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return Entry{}, err
	}
	adopter, err := s.adopters.GetByID(ctx, adopterID)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		AdopterID:  adopterID,
		Score:      s.scorer.Score(adopter, animal).Score,
		EnqueuedAt: s.now(),
	}

	if err := s.repo.Add(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// PromoteNext remove e devolve a entrada de maior prioridade do animal.
// ok=false com fila vazia; quem chama decide o que fazer com a entrada.
func (s *Service) PromoteNext(ctx context.Context, animalID string) (Entry, bool, error) {
	entries, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return Entry{}, false, err
	}

	best, ok := newQueue(entries).popBest()
	if !ok {
		return Entry{}, false, nil
	}

	if _, err := s.repo.Remove(ctx, animalID, best.AdopterID); err != nil {
		return Entry{}, false, err
	}
	return best, true, nil
}

// Withdraw remove a entrada do adotante; ausência não é erro.
func (s *Service) Withdraw(ctx context.Context, animalID, adopterID string) error {
	_, err := s.repo.Remove(ctx, animalID, adopterID)
	return err
}

// Ranking devolve a fila do animal em ordem de prioridade.
func (s *Service) Ranking(ctx context.Context, animalID string) ([]Entry, error) {
	entries, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return Before(entries[i], entries[j]) })
	return entries, nil
}

func (s *Service) Len(ctx context.Context, animalID string) (int, error) {
	entries, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// RefreshScores recalcula o score congelado de cada entrada da fila com os
// dados atuais do adotante.
func (s *Service) RefreshScores(ctx context.Context, animalID string) error {
	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return err
	}
	entries, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return err
	}

	for _, e := range entries {
		adopter, err := s.adopters.GetByID(ctx, e.AdopterID)
		if err != nil {
			continue
		}
		score := s.scorer.Score(adopter, animal).Score
		if score == e.Score {
			continue
		}
		e.Score = score
		if err := s.repo.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
