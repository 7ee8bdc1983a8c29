package animals

import (
	"encoding/json"
	"net/http"
	"time"

	"animal-rescue/internal/domain/adoptions"
	"animal-rescue/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, requests RequestLister, log logger.Logger) {
	log = log.With(map[string]any{"component": "animals"})

	r.Get("/animals", listAnimalsHandler(svc, requests, log))
}

// animalResponse usa camelCase porque es el contrato que consume el frontend (y el descriptor del gateway).
type animalResponse struct {
	ID               int64                     `json:"id"`
	Name             string                    `json:"name"`
	Species          string                    `json:"species"`
	Sex              string                    `json:"sex"`
	Age              int                       `json:"age"`
	Description      string                    `json:"description"`
	AvatarURL        string                    `json:"avatarUrl"`
	RescueDate       *time.Time                `json:"rescueDate,omitempty"`
	AdoptionRequests []adoptionRequestResponse `json:"adoptionRequests"`
}

type adoptionRequestResponse struct {
	ID          string `json:"id"`
	AnimalID    int64  `json:"animalId"`
	AdopterName string `json:"adopterName"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

// listAnimalsHandler godoc
// @Summary Listar animales en adopción
// @Description Devuelve todos los animales, cada uno con sus solicitudes de adopción. No requiere autenticación.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 500 {string} string "internal error"
// @Router /animals [get]
func listAnimalsHandler(svc *Service, requests RequestLister, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("received get all animals request", nil)

		items, err := svc.ListWithRequests(r.Context(), requests)
		if err != nil {
			log.Error("list animals failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	reqs := make([]adoptionRequestResponse, 0, len(a.AdoptionRequests))
	for _, ar := range a.AdoptionRequests {
		reqs = append(reqs, toAdoptionRequestResponse(ar))
	}

	var rescued *time.Time
	if !a.RescueDate.IsZero() {
		t := a.RescueDate
		rescued = &t
	}

	return animalResponse{
		ID:               a.ID,
		Name:             a.Name,
		Species:          a.Species,
		Sex:              a.Sex,
		Age:              a.Age,
		Description:      a.Description,
		AvatarURL:        a.AvatarURL,
		RescueDate:       rescued,
		AdoptionRequests: reqs,
	}
}

func toAdoptionRequestResponse(ar adoptions.AdoptionRequest) adoptionRequestResponse {
	return adoptionRequestResponse{
		ID:          ar.ID,
		AnimalID:    ar.AnimalID,
		AdopterName: ar.AdopterName,
		Email:       ar.Email,
		Notes:       ar.Notes,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
