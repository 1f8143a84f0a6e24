package adopters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("adopter not found")
	// ErrLocked: o adotante tem uma reserva ativa; os dados que embasaram a
	// triagem ficam imutáveis enquanto a reserva durar.
	ErrLocked = errors.New("adopter has an active reservation")
)

// ReservationChecker informa se existe reserva ativa referenciando o
// adotante. Implementado pelo repositório de reservas.
type ReservationChecker interface {
	HasActiveForAdopter(ctx context.Context, adopterID string) (bool, error)
}

type Service struct {
	repo Repository
	held ReservationChecker
	now  func() time.Time
}

func NewService(repo Repository, held ReservationChecker) *Service {
	return &Service{
		repo: repo,
		held: held,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name        string
	Age         int
	Housing     Housing
	HousingArea float64
	Experience  bool
	HasChildren bool
	OtherPets   bool
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if in.Housing != HousingHouse && in.Housing != HousingApartment {
		return fmt.Errorf("%w: housing must be casa or apartamento", ErrInvalidInput)
	}
	if in.HousingArea <= 0 {
		return fmt.Errorf("%w: housing area must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Adopter, error) {
	if err := in.validate(); err != nil {
		return Adopter{}, err
	}

	now := s.now()
	a := Adopter{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Age:         in.Age,
		Housing:     in.Housing,
		HousingArea: in.HousingArea,
		Experience:  in.Experience,
		HasChildren: in.HasChildren,
		OtherPets:   in.OtherPets,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Adopter{}, err
	}
	return a, nil
}

// Amend atualiza os dados do adotante. Rejeitado com ErrLocked enquanto uma
// reserva ativa referenciar o adotante, para manter auditável a decisão de
// triagem da reserva.
func (s *Service) Amend(ctx context.Context, id string, in RegisterInput) (Adopter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Adopter{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Adopter{}, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Adopter{}, err
	}

	if s.held != nil {
		active, err := s.held.HasActiveForAdopter(ctx, id)
		if err != nil {
			return Adopter{}, err
		}
		if active {
			return Adopter{}, ErrLocked
		}
	}

	a.Name = strings.TrimSpace(in.Name)
	a.Age = in.Age
	a.Housing = in.Housing
	a.HousingArea = in.HousingArea
	a.Experience = in.Experience
	a.HasChildren = in.HasChildren
	a.OtherPets = in.OtherPets
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adopter, error) {
	if strings.TrimSpace(id) == "" {
		return Adopter{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Adopter, error) {
	return s.repo.List(ctx)
}
