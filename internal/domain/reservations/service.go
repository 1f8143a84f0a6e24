package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/screening"
	"pet-adoption-center/internal/domain/waitlist"
	"pet-adoption-center/internal/platform/eventlog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reservation not found")
	// ErrNotAvailable: o animal não está DISPONIVEL para reserva.
	ErrNotAvailable = errors.New("animal not available")
	// ErrInvalidState: a reserva não está num estado que permita a operação.
	ErrInvalidState = errors.New("reservation not in a valid state")
	// ErrNotHolder: apenas quem reservou pode confirmar a adoção.
	ErrNotHolder = errors.New("adopter does not hold this reservation")
)

type Screener interface {
	Evaluate(a adopters.Adopter, size animals.Size) screening.Outcome
}

// FeeCalculator é a estratégia de taxa fornecida externamente; consultada
// apenas na confirmação e opaca para o serviço.
type FeeCalculator interface {
	Calculate(an animals.Animal, a adopters.Adopter) float64
	Name() string
}

// Promoter devolve a próxima entrada da fila de espera do animal.
type Promoter interface {
	PromoteNext(ctx context.Context, animalID string) (waitlist.Entry, bool, error)
}

type Params struct {
	Reservations Repository
	Animals      animals.Repository
	Adopters     adopters.Repository
	Screener     Screener
	Fees         FeeCalculator
	Waitlist     Promoter
	Events       eventlog.Sink
	Duration     time.Duration
}

// Service é a máquina de estados das reservas. Toda sequência
// verifica-e-reserva roda sob o lock exclusivo do animal, de modo que duas
// tentativas concorrentes sobre o mesmo animal nunca têm ambas sucesso.
type Service struct {
	reservations Repository
	animals      animals.Repository
	adopters     adopters.Repository
	screen       Screener
	fees         FeeCalculator
	promoter     Promoter
	events       eventlog.Sink
	duration     time.Duration
	now          func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(p Params) *Service {
	if p.Events == nil {
		p.Events = eventlog.Discard
	}
	if p.Duration <= 0 {
		p.Duration = 48 * time.Hour
	}
	return &Service{
		reservations: p.Reservations,
		animals:      p.Animals,
		adopters:     p.Adopters,
		screen:       p.Screener,
		fees:         p.Fees,
		promoter:     p.Waitlist,
		events:       p.Events,
		duration:     p.Duration,
		now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockFor(animalID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[animalID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[animalID] = l
	}
	return l
}

// Reserve cria uma reserva ATIVA para o adotante e marca o animal como
// RESERVADO. Uma reserva vencida ainda pendente é expirada aqui mesmo antes
// da checagem de disponibilidade.
func (s *Service) Reserve(ctx context.Context, animalID, adopterID string) (Reservation, error) {
	animalID = strings.TrimSpace(animalID)
	adopterID = strings.TrimSpace(adopterID)
	if animalID == "" || adopterID == "" {
		return Reservation{}, ErrInvalidInput
	}

	lock := s.lockFor(animalID)
	lock.Lock()
	defer lock.Unlock()

	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return Reservation{}, err
	}

	// Checagem preguiçosa: reserva vencida não deve segurar o animal.
	if animal.Status == animals.StatusReserved {
		animal, err = s.expireIfOverdue(ctx, animal)
		if err != nil {
			return Reservation{}, err
		}
	}

	if animal.Status != animals.StatusAvailable {
		return Reservation{}, fmt.Errorf("%w: status atual %s", ErrNotAvailable, animal.Status)
	}

	adopter, err := s.adopters.GetByID(ctx, adopterID)
	if err != nil {
		return Reservation{}, err
	}

	if outcome := s.screen.Evaluate(adopter, animal.Size); !outcome.Approved {
		return Reservation{}, outcome.Err()
	}

	return s.createActive(ctx, animal, adopter.ID)
}

// createActive assume o lock do animal e o status DISPONIVEL já verificados.
func (s *Service) createActive(ctx context.Context, animal animals.Animal, adopterID string) (Reservation, error) {
	now := s.now()
	r := Reservation{
		ID:        uuid.NewString(),
		AnimalID:  animal.ID,
		AdopterID: adopterID,
		Status:    StatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(s.duration),
	}

	if err := animal.ChangeStatus(animals.StatusReserved, "reservado por "+adopterID, now); err != nil {
		return Reservation{}, err
	}
	animal.Record(animals.EventReserved, fmt.Sprintf("reservado por %s até %s", adopterID, r.ExpiresAt.UTC().Format(time.RFC3339)), now)

	if err := s.reservations.Create(ctx, r); err != nil {
		return Reservation{}, err
	}
	if err := s.animals.Update(ctx, animal); err != nil {
		return Reservation{}, err
	}

	s.events.Emit("reserva_criada", map[string]any{
		"reserva_id": r.ID,
		"animal_id":  r.AnimalID,
		"adotante":   r.AdopterID,
		"expira_em":  r.ExpiresAt.UTC().Format(time.RFC3339),
	})
	return r, nil
}

// Confirmation é o resultado da efetivação de uma adoção.
type Confirmation struct {
	Reservation Reservation
	Animal      animals.Animal
	Adopter     adopters.Adopter
	Fee         float64
	FeeStrategy string
}

// Confirm efetiva a adoção de uma reserva ATIVA e não vencida. Apenas o
// adotante titular pode confirmar.
func (s *Service) Confirm(ctx context.Context, reservationID, adopterID string) (Confirmation, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return Confirmation{}, ErrInvalidInput
	}

	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return Confirmation{}, err
	}

	lock := s.lockFor(r.AnimalID)
	lock.Lock()
	defer lock.Unlock()

	// Releitura sob o lock.
	r, err = s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return Confirmation{}, err
	}

	if r.Status != StatusActive {
		return Confirmation{}, fmt.Errorf("%w: status %s", ErrInvalidState, r.Status)
	}
	if adopterID != "" && adopterID != r.AdopterID {
		return Confirmation{}, ErrNotHolder
	}

	now := s.now()
	if r.ExpiredBy(now) {
		return Confirmation{}, fmt.Errorf("%w: reserva vencida em %s", ErrInvalidState, r.ExpiresAt.UTC().Format(time.RFC3339))
	}

	animal, err := s.animals.GetByID(ctx, r.AnimalID)
	if err != nil {
		return Confirmation{}, err
	}
	adopter, err := s.adopters.GetByID(ctx, r.AdopterID)
	if err != nil {
		return Confirmation{}, err
	}

	var fee float64
	strategy := ""
	if s.fees != nil {
		fee = s.fees.Calculate(animal, adopter)
		strategy = s.fees.Name()
	}

	if err := animal.ChangeStatus(animals.StatusAdopted, "adotado por "+adopter.ID, now); err != nil {
		return Confirmation{}, err
	}
	animal.Record(animals.EventAdopted, fmt.Sprintf("adoção concluída por %s | taxa=%.2f", adopter.ID, fee), now)

	r.Status = StatusConfirmed
	r.ClosedAt = &now

	if err := s.reservations.Update(ctx, r); err != nil {
		return Confirmation{}, err
	}
	if err := s.animals.Update(ctx, animal); err != nil {
		return Confirmation{}, err
	}

	s.events.Emit("adocao_confirmada", map[string]any{
		"reserva_id": r.ID,
		"animal_id":  r.AnimalID,
		"adotante":   r.AdopterID,
		"taxa":       fee,
		"estrategia": strategy,
	})

	return Confirmation{
		Reservation: r,
		Animal:      animal,
		Adopter:     adopter,
		Fee:         fee,
		FeeStrategy: strategy,
	}, nil
}

// Cancel encerra uma reserva ATIVA e libera o animal, promovendo a fila de
// espera antes de qualquer outro observador ver o animal DISPONIVEL.
func (s *Service) Cancel(ctx context.Context, reservationID string) (Reservation, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return Reservation{}, ErrInvalidInput
	}

	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return Reservation{}, err
	}

	lock := s.lockFor(r.AnimalID)
	lock.Lock()
	defer lock.Unlock()

	r, err = s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return Reservation{}, err
	}
	if r.Status != StatusActive {
		return Reservation{}, fmt.Errorf("%w: status %s", ErrInvalidState, r.Status)
	}

	return s.closeLocked(ctx, r, StatusCancelled, "reserva cancelada")
}

// closeLocked fecha uma reserva ATIVA (CANCELADA ou EXPIRADA), devolve o
// animal para DISPONIVEL e tenta promover a fila. Chamada sempre com o lock
// do animal em mãos.
func (s *Service) closeLocked(ctx context.Context, r Reservation, to Status, reason string) (Reservation, error) {
	now := s.now()
	r.Status = to
	r.ClosedAt = &now

	animal, err := s.animals.GetByID(ctx, r.AnimalID)
	if err != nil {
		return Reservation{}, err
	}
	if err := animal.ChangeStatus(animals.StatusAvailable, reason, now); err != nil {
		return Reservation{}, err
	}
	animal.Record(animals.EventReservationEnd, fmt.Sprintf("%s | adotante=%s", reason, r.AdopterID), now)

	if err := s.reservations.Update(ctx, r); err != nil {
		return Reservation{}, err
	}
	if err := s.animals.Update(ctx, animal); err != nil {
		return Reservation{}, err
	}

	event := "reserva_cancelada"
	if to == StatusExpired {
		event = "reserva_expirada"
	}
	s.events.Emit(event, map[string]any{
		"reserva_id": r.ID,
		"animal_id":  r.AnimalID,
		"adotante":   r.AdopterID,
	})

	// A promoção acontece dentro da mesma seção crítica da liberação:
	// nenhum outro chamador reserva o animal antes da fila ser consultada.
	if err := s.promoteLocked(ctx, animal); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

// promoteLocked tenta reservar o animal para o melhor colocado da fila.
// Entradas cuja triagem deixou de passar são descartadas e a próxima é
// tentada, até esgotar a fila.
func (s *Service) promoteLocked(ctx context.Context, animal animals.Animal) error {
	if s.promoter == nil {
		return nil
	}

	for {
		entry, ok, err := s.promoter.PromoteNext(ctx, animal.ID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		adopter, err := s.adopters.GetByID(ctx, entry.AdopterID)
		if err != nil {
			s.events.Emit("promocao_descartada", map[string]any{
				"animal_id": animal.ID,
				"adotante":  entry.AdopterID,
				"motivo":    "adotante não encontrado",
			})
			continue
		}

		if outcome := s.screen.Evaluate(adopter, animal.Size); !outcome.Approved {
			s.events.Emit("promocao_descartada", map[string]any{
				"animal_id": animal.ID,
				"adotante":  entry.AdopterID,
				"motivo":    outcome.Err().Error(),
			})
			continue
		}

		r, err := s.createActive(ctx, animal, adopter.ID)
		if err != nil {
			return err
		}
		s.events.Emit("fila_promovida", map[string]any{
			"animal_id":  animal.ID,
			"adotante":   adopter.ID,
			"reserva_id": r.ID,
			"score":      entry.Score,
		})
		return nil
	}
}

// expireIfOverdue expira a reserva ativa do animal caso o prazo tenha
// vencido, devolvendo o animal atualizado.
func (s *Service) expireIfOverdue(ctx context.Context, animal animals.Animal) (animals.Animal, error) {
	r, err := s.reservations.GetActiveByAnimal(ctx, animal.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// RESERVADO sem reserva ativa: estado anômalo, libera.
			now := s.now()
			if err := animal.ChangeStatus(animals.StatusAvailable, "reservado sem reserva ativa", now); err != nil {
				return animals.Animal{}, err
			}
			if err := s.animals.Update(ctx, animal); err != nil {
				return animals.Animal{}, err
			}
			return animal, nil
		}
		return animals.Animal{}, err
	}

	if !r.ExpiredBy(s.now()) {
		return animal, nil
	}
	if _, err := s.closeLocked(ctx, r, StatusExpired, "reserva expirada"); err != nil {
		return animals.Animal{}, err
	}
	return s.animals.GetByID(ctx, animal.ID)
}

// ActiveByAnimal devolve a reserva ativa do animal, se houver.
func (s *Service) ActiveByAnimal(ctx context.Context, animalID string) (Reservation, error) {
	if strings.TrimSpace(animalID) == "" {
		return Reservation{}, ErrInvalidInput
	}
	return s.reservations.GetActiveByAnimal(ctx, animalID)
}

// HistoryByAnimal devolve todas as reservas já feitas para o animal.
func (s *Service) HistoryByAnimal(ctx context.Context, animalID string) ([]Reservation, error) {
	if strings.TrimSpace(animalID) == "" {
		return nil, ErrInvalidInput
	}
	return s.reservations.ListByAnimal(ctx, animalID)
}
