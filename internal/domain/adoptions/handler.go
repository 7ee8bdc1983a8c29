package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(map[string]any{"component": "adoptions"})

	r.Route("/animals/{animalID}/adoption-requests", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc, log))
		ar.Put("/{requestID}", editHandler(svc, log))
		ar.Delete("/{requestID}", deleteHandler(svc, log))
	})
}

// adoptionRequestBody es lo que manda el cliente. adopterName/animalId/id se aceptan
// en el JSON pero el servicio los pisa.
type adoptionRequestBody struct {
	ID          string `json:"id,omitempty"`
	AnimalID    int64  `json:"animalId,omitempty"`
	AdopterName string `json:"adopterName,omitempty"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

func (b adoptionRequestBody) toAdoptionRequest() AdoptionRequest {
	return AdoptionRequest{
		ID:          b.ID,
		AnimalID:    b.AnimalID,
		AdopterName: b.AdopterName,
		Email:       b.Email,
		Notes:       b.Notes,
	}
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Crea una solicitud de adopción para el animal. El adoptante es el usuario autenticado (cualquier adopterName del body se ignora). Falla con 400 si el animal no existe o si el adoptante ya alcanzó el tope de solicitudes.
// @Tags adoption-requests
// @Accept json
// @Param X-Debug-User header string false "Solo en modo dev, nombre del adoptante"
// @Param Authorization header string false "Bearer token (relay del gateway)"
// @Param animalID path int true "ID del animal"
// @Param payload body adoptionRequestBody true "email y notes"
// @Success 201 "created"
// @Failure 400 {string} string "animal inexistente / demasiadas solicitudes / invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /animals/{animalID}/adoption-requests [post]
func submitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID, ok := parseAnimalID(w, r)
		if !ok {
			return
		}

		var body adoptionRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		log.Info("received submit adoption request", map[string]any{"adopter": p.Name, "animal_id": animalID})

		if _, err := svc.Submit(r.Context(), p.Name, animalID, body.toAdoptionRequest()); err != nil {
			writeError(w, log, "submit", err)
			return
		}

		metrics.ObserveAdoption("submit", "ok")
		w.WriteHeader(http.StatusCreated)
	}
}

// editHandler godoc
// @Summary Editar solicitud de adopción
// @Description Sobrescribe email y notes de una solicitud propia. id, animal y adoptante no cambian.
// @Tags adoption-requests
// @Accept json
// @Param X-Debug-User header string false "Solo en modo dev, nombre del adoptante"
// @Param Authorization header string false "Bearer token (relay del gateway)"
// @Param animalID path int true "ID del animal"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body adoptionRequestBody true "email y notes"
// @Success 200 "ok"
// @Failure 400 {string} string "animal o solicitud inexistente / invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "la solicitud es de otro adoptante"
// @Router /animals/{animalID}/adoption-requests/{requestID} [put]
func editHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID, ok := parseAnimalID(w, r)
		if !ok {
			return
		}
		requestID := chi.URLParam(r, "requestID")

		var body adoptionRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		log.Info("received edit adoption request", map[string]any{"adopter": p.Name, "animal_id": animalID, "request_id": requestID})

		if _, err := svc.Edit(r.Context(), p.Name, animalID, requestID, body.toAdoptionRequest()); err != nil {
			writeError(w, log, "edit", err)
			return
		}

		metrics.ObserveAdoption("edit", "ok")
		w.WriteHeader(http.StatusOK)
	}
}

// deleteHandler godoc
// @Summary Eliminar solicitud de adopción
// @Description Elimina una solicitud propia.
// @Tags adoption-requests
// @Param X-Debug-User header string false "Solo en modo dev, nombre del adoptante"
// @Param Authorization header string false "Bearer token (relay del gateway)"
// @Param animalID path int true "ID del animal"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 "ok"
// @Failure 400 {string} string "animal o solicitud inexistente"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "la solicitud es de otro adoptante"
// @Router /animals/{animalID}/adoption-requests/{requestID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID, ok := parseAnimalID(w, r)
		if !ok {
			return
		}
		requestID := chi.URLParam(r, "requestID")

		log.Info("received delete adoption request", map[string]any{"adopter": p.Name, "animal_id": animalID, "request_id": requestID})

		if err := svc.Delete(r.Context(), p.Name, animalID, requestID); err != nil {
			writeError(w, log, "delete", err)
			return
		}

		metrics.ObserveAdoption("delete", "ok")
		w.WriteHeader(http.StatusOK)
	}
}

func parseAnimalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "animalID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "invalid animal id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError traduce errores de dominio a status HTTP (400 validación/cuota, 403 dueño).
func writeError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	var forbidden *ForbiddenError
	switch {
	case errors.As(err, &forbidden):
		log.Warn("adoption request access denied", map[string]any{"op": op, "actor": forbidden.Actor, "owner": forbidden.Owner})
		metrics.ObserveAdoption(op, "forbidden")
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrForbidden):
		metrics.ObserveAdoption(op, "forbidden")
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrQuotaExceeded):
		metrics.ObserveAdoption(op, "quota_exceeded")
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		metrics.ObserveAdoption(op, "not_found")
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		metrics.ObserveAdoption(op, "invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("adoption request failed", map[string]any{"op": op, "error": err.Error()})
		metrics.ObserveAdoption(op, "error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
