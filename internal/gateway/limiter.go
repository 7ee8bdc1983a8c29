package gateway

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/platform/metrics"

	"golang.org/x/time/rate"
)

const (
	DefaultIdleTTL = 10 * time.Minute

	statsTimeout = 250 * time.Millisecond
)

// KeyFunc identifica al cliente de un request.
type KeyFunc func(r *http.Request) string

// IdentityFunc devuelve la identidad autenticada del request, si la hay.
// Cuando hay identidad, el header del filtro RateLimit no se usa como key.
type IdentityFunc func(r *http.Request) (string, bool)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter aplica los filtros RateLimit del descriptor: un token bucket por (ruta, cliente).
// Se usa cuando el servicio corre sin gateway delante (dev) o como segunda barrera.
type Limiter struct {
	table    *Table
	keyFn    KeyFunc
	identity IdentityFunc
	stats    StatsRecorder
	log      logger.Logger
	idleTTL  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type LimiterOption func(*Limiter)

func WithKeyFunc(fn KeyFunc) LimiterOption {
	return func(l *Limiter) {
		if fn != nil {
			l.keyFn = fn
		}
	}
}

func WithIdentity(fn IdentityFunc) LimiterOption {
	return func(l *Limiter) { l.identity = fn }
}

func WithLogger(log logger.Logger) LimiterOption {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}

func WithStats(s StatsRecorder) LimiterOption {
	return func(l *Limiter) { l.stats = s }
}

func WithIdleTTL(d time.Duration) LimiterOption {
	return func(l *Limiter) {
		if d > 0 {
			l.idleTTL = d
		}
	}
}

func withClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) { l.now = now }
}

func NewLimiter(table *Table, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		table:   table,
		keyFn:   RemoteIP,
		log:     logger.Nop(),
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Decision es el resultado de Allow.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Allow consume un token del bucket (ruta, key).
func (l *Limiter) Allow(route *CompiledRoute, key string) Decision {
	if route == nil || route.RateLimit == nil {
		return Decision{Allowed: true}
	}
	spec := route.RateLimit
	now := l.now()

	l.mu.Lock()
	bk := route.ID + "|" + key
	b, ok := l.buckets[bk]
	if !ok {
		every := spec.Window / time.Duration(spec.Limit)
		b = &bucket{lim: rate.NewLimiter(rate.Every(every), spec.Limit)}
		l.buckets[bk] = b
	}
	b.lastSeen = now
	r := b.lim.ReserveN(now, 1)
	l.mu.Unlock()

	if !r.OK() {
		return Decision{Allowed: false, RetryAfter: spec.Window}
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: d}
	}
	return Decision{Allowed: true}
}

// Middleware matchea por path de backend y rechaza con 429 cuando no hay tokens.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, ok := l.table.MatchBackend(r.Method, r.URL.Path)
		if !ok || route.RateLimit == nil {
			next.ServeHTTP(w, r)
			return
		}

		dec := l.Allow(route, l.requestKey(route, r))
		metrics.ObserveRateLimit(route.ID, dec.Allowed)
		l.record(r.Context(), route.ID, dec.Allowed)

		if !dec.Allowed {
			secs := int(math.Ceil(dec.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestKey: identidad autenticada > header del filtro > keyFn.
// El header solo identifica a anónimos; si no, rotarlo daría buckets nuevos.
func (l *Limiter) requestKey(route *CompiledRoute, r *http.Request) string {
	if l.identity != nil {
		if id, ok := l.identity(r); ok && id != "" {
			return id
		}
	}
	if h := route.RateLimit.KeyHeader; h != "" {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			return "header:" + v
		}
	}
	return l.keyFn(r)
}

// record no corta el request: un store de stats caído solo se loguea.
func (l *Limiter) record(ctx context.Context, routeID string, allowed bool) {
	if l.stats == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()

	if err := l.stats.Record(ctx, routeID, allowed); err != nil {
		l.log.Warn("rate limit stats record failed", map[string]any{
			"route":   routeID,
			"allowed": allowed,
			"error":   err.Error(),
		})
	}
}

// Sweep borra buckets sin uso por más de idleTTL. Devuelve cuántos borró.
func (l *Limiter) Sweep() int {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
			n++
		}
	}
	return n
}

// RunJanitor llama a Sweep cada `every` hasta que ctx se cancele.
func (l *Limiter) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// RemoteIP es el KeyFunc por defecto.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
