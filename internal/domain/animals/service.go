package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-center/internal/platform/eventlog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

type Service struct {
	repo   Repository
	events eventlog.Sink
	now    func() time.Time
}

func NewService(repo Repository, events eventlog.Sink) *Service {
	if events == nil {
		events = eventlog.Discard
	}
	return &Service{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Name        string
	Breed       string
	Species     Species
	Sex         Sex
	AgeMonths   int
	Size        Size
	Temperament []string

	// WalkNeed para cachorros, Independence para gatos; o campo da outra
	// espécie é ignorado.
	WalkNeed     int
	Independence int
}

// Register dá entrada de um animal no sistema com status DISPONIVEL.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Animal, error) {
	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	if name == "" || breed == "" {
		return Animal{}, fmt.Errorf("%w: name and breed are required", ErrInvalidInput)
	}
	if in.Sex != SexMale && in.Sex != SexFemale {
		return Animal{}, fmt.Errorf("%w: sex must be M or F", ErrInvalidInput)
	}
	if in.AgeMonths < 0 {
		return Animal{}, fmt.Errorf("%w: age in months must not be negative", ErrInvalidInput)
	}
	switch in.Size {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		return Animal{}, fmt.Errorf("%w: size must be P, M or G", ErrInvalidInput)
	}

	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		Name:         name,
		Breed:        breed,
		Species:      in.Species,
		Sex:          in.Sex,
		AgeMonths:    in.AgeMonths,
		Size:         in.Size,
		Temperament:  normalizeTemperament(in.Temperament),
		Status:       StatusAvailable,
		RegisteredAt: now,
	}

	switch in.Species {
	case SpeciesDog:
		if in.WalkNeed < 0 || in.WalkNeed > 10 {
			return Animal{}, fmt.Errorf("%w: walk need must be between 0 and 10", ErrInvalidInput)
		}
		a.Dog = &DogTraits{WalkNeed: in.WalkNeed}
	case SpeciesCat:
		if in.Independence < 0 || in.Independence > 10 {
			return Animal{}, fmt.Errorf("%w: independence must be between 0 and 10", ErrInvalidInput)
		}
		a.Cat = &CatTraits{Independence: in.Independence}
	default:
		return Animal{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, in.Species)
	}

	a.Record(EventIntake, fmt.Sprintf("cadastrado com status %s", a.Status), now)

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}

	s.events.Emit("animal_registrado", map[string]any{
		"animal_id": a.ID,
		"especie":   a.Species,
		"porte":     a.Size,
	})
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	if strings.TrimSpace(id) == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}

// ProcessReturn registra a devolução de um animal adotado. Com problema de
// saúde/comportamento o animal segue para QUARENTENA; sem problema volta a
// DISPONIVEL.
func (s *Service) ProcessReturn(ctx context.Context, id, reason string, healthIssue bool) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	now := s.now()
	if err := a.ChangeStatus(StatusReturned, reason, now); err != nil {
		return Animal{}, err
	}
	a.Record(EventReturned, reason, now)

	if healthIssue {
		if err := a.ChangeStatus(StatusQuarantine, "problema de saúde/comportamento na devolução", now); err != nil {
			return Animal{}, err
		}
	} else {
		if err := a.ChangeStatus(StatusAvailable, "devolvido sem problemas", now); err != nil {
			return Animal{}, err
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}

	s.events.Emit("animal_devolvido", map[string]any{
		"animal_id": a.ID,
		"motivo":    reason,
		"status":    a.Status,
	})
	return a, nil
}

// Reassess reavalia um animal devolvido ou em quarentena: apto volta a
// DISPONIVEL, inapto vira INADOTAVEL (terminal).
func (s *Service) Reassess(ctx context.Context, id string, fit bool) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.Status != StatusQuarantine && a.Status != StatusReturned {
		return Animal{}, fmt.Errorf("%w: %s -> reavaliacao", ErrInvalidTransition, a.Status)
	}

	target := StatusAvailable
	result := "aprovado"
	if !fit {
		target = StatusUnavailable
		result = "reprovado"
	}

	now := s.now()
	if err := a.ChangeStatus(target, "reavaliação: "+result, now); err != nil {
		return Animal{}, err
	}
	a.Record(EventReassessed, result, now)

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}

	s.events.Emit("animal_reavaliado", map[string]any{
		"animal_id": a.ID,
		"resultado": result,
		"status":    a.Status,
	})
	return a, nil
}

func normalizeTemperament(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
