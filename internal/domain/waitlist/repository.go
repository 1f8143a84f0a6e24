package waitlist

import "context"

// Repository guarda as entradas sem ordenação; a prioridade é aplicada pelo
// serviço via comparador.
type Repository interface {
	Add(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	// Remove devolve false (sem erro) quando a entrada não existe.
	Remove(ctx context.Context, animalID, adopterID string) (bool, error)
	ExistsFor(ctx context.Context, animalID, adopterID string) (bool, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Entry, error)
}
