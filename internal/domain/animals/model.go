package animals

import (
	"time"

	"animal-rescue/internal/domain/adoptions"
)

// Animal es un animal en adopción. Solo lectura para este servicio.
type Animal struct {
	ID int64

	Name        string
	Species     string
	Sex         string
	Age         int
	Description string
	AvatarURL   string
	RescueDate  time.Time

	// Se arma al leer (listado); no se persiste.
	AdoptionRequests []adoptions.AdoptionRequest
}
