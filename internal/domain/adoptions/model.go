package adoptions

// AdoptionRequest es la solicitud de un adoptante para un animal.
// AdopterName lo asigna el servidor desde el principal; nunca viene del cliente.
type AdoptionRequest struct {
	ID       string // lo asigna el store en el primer Save
	AnimalID int64

	AdopterName string

	Email string
	Notes string
}
