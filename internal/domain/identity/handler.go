package identity

import (
	"net/http"

	"animal-rescue/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/whoami", whoamiHandler())
}

// whoamiHandler godoc
// @Summary Usuario actual
// @Description Devuelve el nombre del usuario autenticado o vacío si no hay sesión. Nunca falla.
// @Tags identity
// @Produce plain
// @Param X-Debug-User header string false "Solo en modo dev, nombre del adoptante"
// @Param Authorization header string false "Bearer token (relay del gateway)"
// @Success 200 {string} string "nombre o vacío"
// @Router /whoami [get]
func whoamiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if p, ok := middleware.GetPrincipal(r.Context()); ok {
			name = p.Name
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	}
}
