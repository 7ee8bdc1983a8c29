package middleware

import (
	"context"
	"net/http"
	"time"
)

// InFlightOptions configura el tope global de requests concurrentes.
// Max <= 0 deshabilita el límite.
type InFlightOptions struct {
	Max            int
	AcquireTimeout time.Duration
	RejectStatus   int
}

// InFlight limita cuántos requests se atienden a la vez usando un semáforo de canal.
// Si AcquireTimeout <= 0 espera hasta que el cliente cancele.
func InFlight(opts InFlightOptions) func(http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}

	sem := make(chan struct{}, opts.Max)

	acquire := func(ctx context.Context) bool {
		if opts.AcquireTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.AcquireTimeout)
			defer cancel()
		}
		select {
		case sem <- struct{}{}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acquire(r.Context()) {
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer func() { <-sem }()

			next.ServeHTTP(w, r)
		})
	}
}
