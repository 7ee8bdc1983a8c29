package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"animal-rescue/internal/ports/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// DebugUserHeader permite inyectar el adoptante en modo dev (sin verifier).
const DebugUserHeader = "X-Debug-User"

// AuthContext:
// - Si verifier != nil y viene Bearer token (relay del gateway) => Verify() y setea principal.
// - Si verifier == nil => modo dev: si viene header X-Debug-User => setea principal.
// - Si no hay principal, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if name := strings.TrimSpace(r.Header.Get(DebugUserHeader)); name != "" {
					ctx := WithPrincipal(r.Context(), auth.Principal{Name: name, Subject: name})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí: /whoami y /animals son públicos. El handler decide 401.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) (auth.Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	if !ok || strings.TrimSpace(p.Name) == "" {
		return auth.Principal{}, false
	}
	return p, true
}

// PrincipalKey es la key de rate limiting del adoptante autenticado.
func PrincipalKey(r *http.Request) (string, bool) {
	p, ok := GetPrincipal(r.Context())
	if !ok {
		return "", false
	}
	return "user:" + p.Name, true
}

// ClientKey identifica al cliente para rate limiting: adoptante si hay principal,
// si no la IP (RemoteAddr ya viene normalizado por chimw.RealIP).
func ClientKey(r *http.Request) string {
	if k, ok := PrincipalKey(r); ok {
		return k
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return "ip:" + host
	}
	if r.RemoteAddr != "" {
		return "ip:" + r.RemoteAddr
	}
	return "unknown"
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
