package animals

import (
	"context"
	"errors"

	"animal-rescue/internal/domain/adoptions"

	"golang.org/x/sync/errgroup"
)

const DefaultLookupWorkers = 8

// RequestLister evita acoplar el listado al servicio concreto de adopciones.
type RequestLister interface {
	ListByAnimal(ctx context.Context, animalID int64) ([]adoptions.AdoptionRequest, error)
}

type Service struct {
	repo    Repository
	workers int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		workers: DefaultLookupWorkers,
	}
}

// Exists implementa adoptions.AnimalLookup.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListWithRequests devuelve todos los animales con sus solicitudes.
// Una consulta por animal (N+1) a propósito: prioriza legibilidad sobre eficiencia.
// Las consultas corren en un pool acotado y el orden de salida es el del repo.
func (s *Service) ListWithRequests(ctx context.Context, requests RequestLister) ([]Animal, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range items {
		i := i
		g.Go(func() error {
			reqs, err := requests.ListByAnimal(gctx, items[i].ID)
			if err != nil {
				return err
			}
			if reqs == nil {
				reqs = []adoptions.AdoptionRequest{}
			}
			items[i].AdoptionRequests = reqs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
