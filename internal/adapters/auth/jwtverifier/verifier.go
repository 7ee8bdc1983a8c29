package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animal-rescue/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Config del verificador HMAC.
type Config struct {
	Secret string
	Issuer string // opcional
}

type claims struct {
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier para tokens HS256/384/512.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func New(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Principal{}, ErrInvalidToken
	}

	var c claims
	_, err := v.parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// preferred_username primero (keycloak/uaa), sub como fallback
	name := strings.TrimSpace(c.PreferredUsername)
	if name == "" {
		name = strings.TrimSpace(c.Subject)
	}
	if name == "" {
		return auth.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return auth.Principal{
		Name:    name,
		Subject: strings.TrimSpace(c.Subject),
		Email:   strings.TrimSpace(c.Email),
	}, nil
}
