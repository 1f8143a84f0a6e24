package reservations

import "context"

type Repository interface {
	Create(ctx context.Context, r Reservation) error
	Update(ctx context.Context, r Reservation) error
	GetByID(ctx context.Context, id string) (Reservation, error)
	// GetActiveByAnimal devolve ErrNotFound quando o animal não tem reserva
	// ativa. O invariante de no máximo uma ATIVA por animal é garantido pelo
	// serviço.
	GetActiveByAnimal(ctx context.Context, animalID string) (Reservation, error)
	ListActive(ctx context.Context) ([]Reservation, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	// HasActiveForAdopter satisfaz adopters.ReservationChecker.
	HasActiveForAdopter(ctx context.Context, adopterID string) (bool, error)
}
