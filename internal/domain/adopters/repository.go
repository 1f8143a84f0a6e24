package adopters

import "context"

type Repository interface {
	Create(ctx context.Context, a Adopter) error
	Update(ctx context.Context, a Adopter) error
	GetByID(ctx context.Context, id string) (Adopter, error)
	List(ctx context.Context) ([]Adopter, error)
}
