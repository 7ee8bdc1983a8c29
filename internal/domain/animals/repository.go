package animals

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los repos cuando el id no existe.
var ErrNotFound = errors.New("animal not found")

type Repository interface {
	FindAll(ctx context.Context) ([]Animal, error)
	FindByID(ctx context.Context, id int64) (Animal, error)
}
