package memory

import (
	"context"
	"strings"
	"sync"

	"animal-rescue/internal/domain/adoptions"

	"github.com/google/uuid"
)

type adoptionRepo struct {
	mu    sync.RWMutex
	byID  map[string]adoptions.AdoptionRequest
	order []string // orden de inserción
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		byID: make(map[string]adoptions.AdoptionRequest),
	}
}

func (r *adoptionRepo) FindByAnimal(ctx context.Context, animalID int64) ([]adoptions.AdoptionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.AdoptionRequest, 0)
	for _, id := range r.order {
		if ar := r.byID[id]; ar.AnimalID == animalID {
			out = append(out, ar)
		}
	}
	return out, nil
}

func (r *adoptionRepo) CountByAdopterName(ctx context.Context, adopterName string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, ar := range r.byID {
		if ar.AdopterName == adopterName {
			n++
		}
	}
	return n, nil
}

func (r *adoptionRepo) Save(ctx context.Context, ar adoptions.AdoptionRequest) (adoptions.AdoptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ar.ID) == "" {
		ar.ID = uuid.NewString()
	}
	if _, exists := r.byID[ar.ID]; !exists {
		r.order = append(r.order, ar.ID)
	}
	r.byID[ar.ID] = ar
	return ar, nil
}

func (r *adoptionRepo) Delete(ctx context.Context, ar adoptions.AdoptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[ar.ID]; !exists {
		return adoptions.ErrNotFound
	}
	delete(r.byID, ar.ID)

	for i, id := range r.order {
		if id == ar.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
