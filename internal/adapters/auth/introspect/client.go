package introspect

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"animal-rescue/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("introspection client not configured")
	ErrUnauthorized  = errors.New("introspection unauthorized")
	ErrUpstream      = errors.New("introspection upstream error")
)

// Config del endpoint de introspección (RFC 7662).
type Config struct {
	URL          string
	ClientID     string
	ClientSecret string

	Timeout time.Duration
}

// Response es el subconjunto de campos que usamos.
type Response struct {
	Active            bool   `json:"active"`
	Username          string `json:"username"`
	PreferredUsername string `json:"preferred_username"`
	Subject           string `json:"sub"`
	Email             string `json:"email"`
}

type Client struct {
	url          string
	clientID     string
	clientSecret string
	http         *httpclient.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		url:          strings.TrimSpace(cfg.URL),
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		http:         httpclient.New(cfg.Timeout),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.url != ""
}

// Introspect pregunta al authorization server por el token.
func (c *Client) Introspect(ctx context.Context, token string) (Response, error) {
	if !c.IsConfigured() {
		return Response{}, ErrNotConfigured
	}

	headers := map[string]string{}
	if c.clientID != "" {
		raw := c.clientID + ":" + c.clientSecret
		headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	}

	form := url.Values{}
	form.Set("token", token)
	form.Set("token_type_hint", "access_token")

	var out Response
	if err := c.http.PostForm(ctx, c.url, headers, form, &out); err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			switch he.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return Response{}, ErrUnauthorized
			}
		}
		return Response{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return out, nil
}
