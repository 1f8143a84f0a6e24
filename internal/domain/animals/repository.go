package animals

import "context"

// Filter restringe List; campos nulos não filtram.
type Filter struct {
	Status  *Status
	Species *Species
	Size    *Size
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// List devolve os animais ordenados por data de entrada (mais antigos
	// primeiro).
	List(ctx context.Context, f Filter) ([]Animal, error)
}
