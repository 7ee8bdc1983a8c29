package adoptions

import "context"

type Repository interface {
	FindByAnimal(ctx context.Context, animalID int64) ([]AdoptionRequest, error)
	CountByAdopterName(ctx context.Context, adopterName string) (int, error)

	// Save inserta si ar.ID está vacío (asignando id) o actualiza en caso contrario.
	Save(ctx context.Context, ar AdoptionRequest) (AdoptionRequest, error)
	Delete(ctx context.Context, ar AdoptionRequest) error
}
