package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "animal-rescue/docs"
	mem "animal-rescue/internal/adapters/storage/memory"
	pg "animal-rescue/internal/adapters/storage/postgres"
	"animal-rescue/internal/domain/adoptions"
	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/domain/identity"
	"animal-rescue/internal/gateway"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/platform/metrics"
	"animal-rescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const DefaultAdoptionRequestLimit = 2

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene DB (ya migrada, ver postgres.Setup) usa Postgres.
	// Si no, in-memory con animales semilla.
	DB *sql.DB

	// <= 0 => DefaultAdoptionRequestLimit
	AdoptionRequestLimit int

	Logger logger.Logger

	// nil => descriptor embebido
	RouteDocument *gateway.Document
	// nil => sin rate limit en proceso
	RateLimiter *gateway.Limiter

	MaxInFlight     int
	InFlightTimeout time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	// después de AuthContext para poder loguear el principal
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.InFlight(middleware.InFlightOptions{
		Max:            opts.MaxInFlight,
		AcquireTimeout: opts.InFlightTimeout,
	}))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	doc := opts.RouteDocument
	if doc == nil {
		d, err := gateway.Default()
		if err != nil {
			log.Error("embedded route descriptor invalid", map[string]any{"error": err.Error()})
		}
		doc = d
	}
	if doc != nil {
		r.Get("/api-config", apiConfigHandler(doc))
	}

	animalRepo, adoptionRepo := buildRepos(opts, log)

	// Services por módulo
	limit := opts.AdoptionRequestLimit
	if limit <= 0 {
		limit = DefaultAdoptionRequestLimit
	}
	animalsSvc := animals.NewService(animalRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo, animalsSvc, limit)

	// Rutas por módulo
	identity.RegisterRoutes(r)
	animals.RegisterRoutes(r, animalsSvc, adoptionsSvc, log)
	adoptions.RegisterRoutes(r, adoptionsSvc, log)

	return r
}

func buildRepos(opts Options, log logger.Logger) (animals.Repository, adoptions.Repository) {
	if opts.DB != nil {
		log.Info("using postgres stores", nil)
		return pg.NewAnimalsRepo(opts.DB), pg.NewAdoptionsRepo(opts.DB)
	}

	log.Info("using in-memory stores", nil)
	return mem.NewAnimalRepo(mem.SeedAnimals()...), mem.NewAdoptionRepo()
}

// apiConfigHandler godoc
// @Summary Descriptor de rutas del gateway
// @Description Devuelve el descriptor (predicates, filters, tokenRelay, model) que consume el API gateway.
// @Tags gateway
// @Produce json
// @Success 200 {object} gateway.Config
// @Router /api-config [get]
func apiConfigHandler(doc *gateway.Document) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.Raw)
	}
}
