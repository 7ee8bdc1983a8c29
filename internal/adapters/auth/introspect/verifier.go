package introspect

import (
	"context"
	"errors"
	"strings"

	"animal-rescue/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier usando introspección.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Principal{}, ErrTokenEmpty
	}

	res, err := v.client.Introspect(ctx, token)
	if err != nil {
		return auth.Principal{}, err
	}
	if !res.Active {
		return auth.Principal{}, ErrUnauthorized
	}

	name := firstNonEmpty(res.PreferredUsername, res.Username, res.Subject)
	if name == "" {
		return auth.Principal{}, errors.New("introspection response missing username")
	}

	return auth.Principal{
		Name:    name,
		Subject: strings.TrimSpace(res.Subject),
		Email:   strings.TrimSpace(res.Email),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
