package gateway

import "encoding/json"

// Config es el descriptor de rutas que lee el API gateway externo.
// Los nombres JSON no se pueden cambiar: el gateway parsea este mismo archivo.
type Config struct {
	Routes []Route `json:"routes"`
}

type Route struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Predicates  []string `json:"predicates"`
	Filters     []string `json:"filters,omitempty"`
	TokenRelay  bool     `json:"tokenRelay,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Model       *Model   `json:"model,omitempty"`
}

// Model guarda los JSON Schema tal cual vienen; no los interpretamos.
type Model struct {
	RequestBody json.RawMessage `json:"requestBody,omitempty"`
	Responses   json.RawMessage `json:"responses,omitempty"`
}
