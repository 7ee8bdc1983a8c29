package gateway

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed api-config.json
var defaultDocument []byte

var ErrInvalidDocument = errors.New("invalid route descriptor")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document es un descriptor ya parseado. Raw siempre es JSON (lo que se sirve en /api-config).
type Document struct {
	Config Config
	Raw    []byte
	Source string
}

// Default devuelve el descriptor embebido del servicio.
func Default() (*Document, error) {
	doc, err := Parse(defaultDocument, FormatJSON)
	if err != nil {
		return nil, err
	}
	doc.Source = "embedded:api-config.json"
	return doc, nil
}

// LoadFile lee un descriptor .json, .yaml o .yml.
func LoadFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	doc, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

func Parse(b []byte, format Format) (*Document, error) {
	raw := b
	if format == FormatYAML {
		var tree any
		if err := yaml.Unmarshal(b, &tree); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		j, err := json.Marshal(normalizeYAML(tree))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		raw = j
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(cfg.Routes) == 0 {
		return nil, fmt.Errorf("%w: no routes", ErrInvalidDocument)
	}

	return &Document{Config: cfg, Raw: raw}, nil
}

// normalizeYAML convierte map[any]any (keys no-string) a map[string]any para poder pasar a JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	default:
		return v
	}
}
