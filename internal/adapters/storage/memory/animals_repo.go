package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"animal-rescue/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[int64]animals.Animal
}

func NewAnimalRepo(seed ...animals.Animal) animals.Repository {
	r := &animalRepo{
		byID: make(map[int64]animals.Animal, len(seed)),
	}
	for _, a := range seed {
		a.AdoptionRequests = nil
		r.byID[a.ID] = a
	}
	return r
}

func (r *animalRepo) FindAll(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// Orden estable por id (el de la tabla en postgres)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *animalRepo) FindByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

// SeedAnimals es el catálogo de arranque (memoria y postgres.SeedAnimals).
func SeedAnimals() []animals.Animal {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	return []animals.Animal{
		{ID: 1, Name: "Chocobo", Species: "dog", Sex: "male", Age: 3, RescueDate: day(2020, time.January, 10), AvatarURL: "/images/chocobo.jpg", Description: "Chocobo is a gentle giant who loves long walks."},
		{ID: 2, Name: "Toby", Species: "dog", Sex: "male", Age: 1, RescueDate: day(2020, time.February, 2), AvatarURL: "/images/toby.jpg", Description: "Toby is a playful puppy full of energy."},
		{ID: 3, Name: "Bella", Species: "cat", Sex: "female", Age: 4, RescueDate: day(2020, time.March, 15), AvatarURL: "/images/bella.jpg", Description: "Bella enjoys sunny windows and quiet homes."},
		{ID: 4, Name: "Max", Species: "dog", Sex: "male", Age: 6, RescueDate: day(2020, time.April, 1), AvatarURL: "/images/max.jpg", Description: "Max is calm, house-trained and great with kids."},
		{ID: 5, Name: "Luna", Species: "cat", Sex: "female", Age: 2, RescueDate: day(2020, time.April, 20), AvatarURL: "/images/luna.jpg", Description: "Luna is curious and loves feather toys."},
		{ID: 6, Name: "Rocky", Species: "dog", Sex: "male", Age: 5, RescueDate: day(2020, time.May, 5), AvatarURL: "/images/rocky.jpg", Description: "Rocky needs an active family and a big yard."},
		{ID: 7, Name: "Daisy", Species: "dog", Sex: "female", Age: 2, RescueDate: day(2020, time.June, 12), AvatarURL: "/images/daisy.jpg", Description: "Daisy is shy at first and very loyal."},
		{ID: 8, Name: "Simba", Species: "cat", Sex: "male", Age: 7, RescueDate: day(2020, time.July, 3), AvatarURL: "/images/simba.jpg", Description: "Simba is a senior cat looking for a lap."},
		{ID: 9, Name: "Coco", Species: "dog", Sex: "female", Age: 8, RescueDate: day(2020, time.August, 19), AvatarURL: "/images/coco.jpg", Description: "Coco is a sweet senior who loves naps."},
		{ID: 10, Name: "Oreo", Species: "cat", Sex: "male", Age: 1, RescueDate: day(2020, time.September, 9), AvatarURL: "/images/oreo.jpg", Description: "Oreo gets along with other cats and dogs."},
	}
}
