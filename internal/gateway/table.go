package gateway

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Predicados y filtros que entendemos. Otros filtros se conservan en el documento
// (el gateway puede soportarlos) pero acá no se aplican.
const (
	PredicatePath   = "Path"
	PredicateMethod = "Method"

	FilterRateLimit   = "RateLimit"
	FilterStripPrefix = "StripPrefix"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// RateLimitSpec es "RateLimit=<n>,<window>[,{header:X}]".
type RateLimitSpec struct {
	Limit     int
	Window    time.Duration
	KeyHeader string
}

// CompiledRoute es una ruta del descriptor lista para matchear.
type CompiledRoute struct {
	ID    string
	Index int
	Route Route

	Paths        []PathPattern // como las ve el gateway
	BackendPaths []PathPattern // después de StripPrefix
	Methods      []string      // vacío = cualquiera
	RateLimit    *RateLimitSpec
	StripPrefix  int
}

func (c *CompiledRoute) allowsMethod(method string) bool {
	if len(c.Methods) == 0 {
		return true
	}
	for _, m := range c.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Table es el descriptor compilado. El orden importa: gana la primera ruta que matchea.
type Table struct {
	routes []*CompiledRoute
}

func (t *Table) Routes() []*CompiledRoute {
	return t.routes
}

// Match busca por path externo (el que recibe el gateway).
func (t *Table) Match(method, path string) (*CompiledRoute, bool) {
	return t.match(method, path, func(c *CompiledRoute) []PathPattern { return c.Paths })
}

// MatchBackend busca por path ya reescrito (el que recibe este servicio).
func (t *Table) MatchBackend(method, path string) (*CompiledRoute, bool) {
	return t.match(method, path, func(c *CompiledRoute) []PathPattern { return c.BackendPaths })
}

func (t *Table) match(method, path string, patterns func(*CompiledRoute) []PathPattern) (*CompiledRoute, bool) {
	if t == nil {
		return nil, false
	}
	method = strings.ToUpper(method)
	for _, c := range t.routes {
		if !c.allowsMethod(method) {
			continue
		}
		for _, p := range patterns(c) {
			if p.Match(path) {
				return c, true
			}
		}
	}
	return nil, false
}

// Compile valida el documento y arma la tabla. Junta todos los errores de una vez.
func Compile(cfg Config) (*Table, error) {
	var errs []string
	t := &Table{}

	for i, r := range cfg.Routes {
		c, err := compileRoute(i, r)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		t.routes = append(t.routes, c)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(errs, "; "))
	}
	return t, nil
}

func compileRoute(i int, r Route) (*CompiledRoute, error) {
	c := &CompiledRoute{
		ID:    routeID(i, r),
		Index: i,
		Route: r,
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("route %d (%s): %s", i, c.ID, fmt.Sprintf(format, args...))
	}

	for _, raw := range r.Predicates {
		name, args, err := splitDefinition(raw)
		if err != nil {
			return nil, fail("%v", err)
		}
		switch name {
		case PredicatePath:
			for _, a := range splitArgs(args) {
				p, err := ParsePathPattern(a)
				if err != nil {
					return nil, fail("%v", err)
				}
				c.Paths = append(c.Paths, p)
			}
		case PredicateMethod:
			for _, a := range splitArgs(args) {
				m := strings.ToUpper(a)
				if !knownMethods[m] {
					return nil, fail("unknown method %q", a)
				}
				c.Methods = append(c.Methods, m)
			}
		default:
			return nil, fail("unsupported predicate %q", name)
		}
	}
	if len(c.Paths) == 0 {
		return nil, fail("missing Path predicate")
	}

	for _, raw := range r.Filters {
		name, args, err := splitDefinition(raw)
		if err != nil {
			return nil, fail("%v", err)
		}
		switch name {
		case FilterRateLimit:
			spec, err := parseRateLimit(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			c.RateLimit = &spec
		case FilterStripPrefix:
			n, err := strconv.Atoi(strings.TrimSpace(args))
			if err != nil || n < 0 {
				return nil, fail("invalid StripPrefix %q", args)
			}
			c.StripPrefix = n
		}
	}

	for _, p := range c.Paths {
		c.BackendPaths = append(c.BackendPaths, p.Strip(c.StripPrefix))
	}
	return c, nil
}

func routeID(i int, r Route) string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return "route-" + strconv.Itoa(i)
}

// splitDefinition separa "Name=args".
func splitDefinition(raw string) (string, string, error) {
	name, args, ok := strings.Cut(strings.TrimSpace(raw), "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("malformed definition %q", raw)
	}
	return name, strings.TrimSpace(args), nil
}

func splitArgs(args string) []string {
	var out []string
	for _, a := range strings.Split(args, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func parseRateLimit(args string) (RateLimitSpec, error) {
	parts := splitArgs(args)
	if len(parts) < 2 || len(parts) > 3 {
		return RateLimitSpec{}, fmt.Errorf("RateLimit expects <n>,<window>[,{header:Name}], got %q", args)
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil || n <= 0 {
		return RateLimitSpec{}, fmt.Errorf("invalid RateLimit count %q", parts[0])
	}
	window, err := time.ParseDuration(parts[1])
	if err != nil || window <= 0 {
		return RateLimitSpec{}, fmt.Errorf("invalid RateLimit window %q", parts[1])
	}

	spec := RateLimitSpec{Limit: n, Window: window}
	if len(parts) == 3 {
		loc := strings.TrimSuffix(strings.TrimPrefix(parts[2], "{"), "}")
		kind, val, ok := strings.Cut(loc, ":")
		if !ok || strings.TrimSpace(kind) != "header" || strings.TrimSpace(val) == "" {
			return RateLimitSpec{}, fmt.Errorf("invalid RateLimit key location %q", parts[2])
		}
		spec.KeyHeader = http.CanonicalHeaderKey(strings.TrimSpace(val))
	}
	return spec, nil
}
