package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// AnimalLookup evita importar el paquete animals (rompe ciclos).
type AnimalLookup interface {
	Exists(ctx context.Context, animalID int64) (bool, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	limit   int
}

// NewService recibe el tope por adoptante ya validado por config (>= 1).
func NewService(repo Repository, animals AnimalLookup, limit int) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		limit:   limit,
	}
}

// Submit persiste una nueva solicitud. `in` es lo que bindeó el handler desde el body;
// id, animal y adoptante se pisan acá.
func (s *Service) Submit(ctx context.Context, adopterName string, animalID int64, in AdoptionRequest) (AdoptionRequest, error) {
	adopterName = strings.TrimSpace(adopterName)
	if adopterName == "" {
		return AdoptionRequest{}, ErrInvalidInput
	}

	n, err := s.repo.CountByAdopterName(ctx, adopterName)
	if err != nil {
		return AdoptionRequest{}, err
	}
	if n >= s.limit {
		return AdoptionRequest{}, fmt.Errorf("%w: Too many existing adoption requests", ErrQuotaExceeded)
	}

	if err := s.requireAnimal(ctx, animalID); err != nil {
		return AdoptionRequest{}, err
	}

	in.ID = ""
	in.AnimalID = animalID
	in.AdopterName = adopterName

	return s.repo.Save(ctx, in)
}

// Edit sobrescribe solo email y notes de una solicitud propia.
func (s *Service) Edit(ctx context.Context, adopterName string, animalID int64, requestID string, in AdoptionRequest) (AdoptionRequest, error) {
	existing, err := s.findOwned(ctx, adopterName, animalID, requestID)
	if err != nil {
		return AdoptionRequest{}, err
	}

	existing.Email = in.Email
	existing.Notes = in.Notes

	return s.repo.Save(ctx, existing)
}

// Delete elimina una solicitud propia.
func (s *Service) Delete(ctx context.Context, adopterName string, animalID int64, requestID string) error {
	existing, err := s.findOwned(ctx, adopterName, animalID, requestID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, existing)
}

// ListByAnimal devuelve las solicitudes de un animal (usado por el listado de animales).
func (s *Service) ListByAnimal(ctx context.Context, animalID int64) ([]AdoptionRequest, error) {
	return s.repo.FindByAnimal(ctx, animalID)
}

func (s *Service) requireAnimal(ctx context.Context, animalID int64) error {
	ok, err := s.animals.Exists(ctx, animalID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: Animal with id %d doesn't exist!", ErrNotFound, animalID)
	}
	return nil
}

// findOwned valida animal -> solicitud dentro de ese animal -> dueño, en ese orden.
func (s *Service) findOwned(ctx context.Context, adopterName string, animalID int64, requestID string) (AdoptionRequest, error) {
	adopterName = strings.TrimSpace(adopterName)
	requestID = strings.TrimSpace(requestID)
	if adopterName == "" {
		return AdoptionRequest{}, ErrInvalidInput
	}

	if err := s.requireAnimal(ctx, animalID); err != nil {
		return AdoptionRequest{}, err
	}

	items, err := s.repo.FindByAnimal(ctx, animalID)
	if err != nil {
		return AdoptionRequest{}, err
	}

	for _, ar := range items {
		if ar.ID != requestID {
			continue
		}
		if ar.AdopterName != adopterName {
			// No exponemos el nombre del dueño actual al caller.
			return AdoptionRequest{}, &ForbiddenError{Actor: adopterName, Owner: ar.AdopterName}
		}
		return ar, nil
	}

	return AdoptionRequest{}, fmt.Errorf("%w: AdoptionRequest with id %s doesn't exist!", ErrNotFound, requestID)
}

// ForbiddenError lleva actor y dueño para logging; Error() solo muestra el actor.
type ForbiddenError struct {
	Actor string
	Owner string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("User %s cannot modify another user's adoption request", e.Actor)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }
