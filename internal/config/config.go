package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	AuthModeDev        = "dev"
	AuthModeJWT        = "jwt"
	AuthModeIntrospect = "introspect"
)

// Config es la configuración del proceso. Se lee una vez al arrancar y no cambia después.
type Config struct {
	Port string `env:"PORT,default=8080"`

	// Tope de solicitudes de adopción por adoptante.
	AdoptionRequestLimit int `env:"ADOPTION_REQUEST_LIMIT,default=2"`

	// Vacío => repos in-memory con animales semilla.
	DBDSN string `env:"DB_DSN"`

	AuthMode                  string `env:"AUTH_MODE,default=dev"`
	JWTSecret                 string `env:"JWT_SECRET"`
	JWTIssuer                 string `env:"JWT_ISSUER"`
	IntrospectionURL          string `env:"INTROSPECTION_URL"`
	IntrospectionClientID     string `env:"INTROSPECTION_CLIENT_ID"`
	IntrospectionClientSecret string `env:"INTROSPECTION_CLIENT_SECRET"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	AppName   string `env:"APP_NAME,default=animal-rescue"`

	// Vacío => descriptor embebido (gateway.Default).
	RouteConfigPath    string        `env:"ROUTE_CONFIG_PATH"`
	RateLimitEnabled   bool          `env:"RATE_LIMIT_ENABLED,default=true"`
	RateStatsRedisAddr string        `env:"RATE_STATS_REDIS_ADDR"`
	RateStatsRedisDB   int           `env:"RATE_STATS_REDIS_DB,default=0"`
	RateStatsPrefix    string        `env:"RATE_STATS_PREFIX,default=animal-rescue:ratelimit"`
	RateStatsTTL       time.Duration `env:"RATE_STATS_TTL,default=24h"`

	MaxInFlight     int           `env:"MAX_IN_FLIGHT,default=0"`
	InFlightTimeout time.Duration `env:"IN_FLIGHT_TIMEOUT,default=0s"`
}

// Load carga envFile (si existe) y decodifica el entorno.
// godotenv no pisa variables ya definidas en el proceso.
func Load(envFile string) (Config, error) {
	if strings.TrimSpace(envFile) != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}

	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AdoptionRequestLimit < 1 {
		return fmt.Errorf("ADOPTION_REQUEST_LIMIT must be >= 1, got %d", c.AdoptionRequestLimit)
	}

	switch c.AuthMode {
	case AuthModeDev, "":
	case AuthModeJWT:
		if strings.TrimSpace(c.JWTSecret) == "" {
			return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case AuthModeIntrospect:
		if strings.TrimSpace(c.IntrospectionURL) == "" {
			return errors.New("INTROSPECTION_URL is required when AUTH_MODE=introspect")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	if c.MaxInFlight < 0 {
		return fmt.Errorf("MAX_IN_FLIGHT must be >= 0, got %d", c.MaxInFlight)
	}
	return nil
}

func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}
