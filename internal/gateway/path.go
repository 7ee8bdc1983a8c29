package gateway

import (
	"fmt"
	"strings"
)

// PathPattern soporta segmentos literales, "{var}" y "*" (un segmento) y "**" al final (resto).
type PathPattern struct {
	raw  string
	segs []string
}

func ParsePathPattern(s string) (PathPattern, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		return PathPattern{}, fmt.Errorf("path pattern %q must start with /", s)
	}

	segs := splitPath(s)
	for i, seg := range segs {
		if seg == "**" && i != len(segs)-1 {
			return PathPattern{}, fmt.Errorf("path pattern %q: ** only allowed at the end", s)
		}
		if strings.HasPrefix(seg, "{") != strings.HasSuffix(seg, "}") {
			return PathPattern{}, fmt.Errorf("path pattern %q: unbalanced braces in %q", s, seg)
		}
	}
	return PathPattern{raw: s, segs: segs}, nil
}

func (p PathPattern) String() string {
	return p.raw
}

func (p PathPattern) Match(path string) bool {
	parts := splitPath(path)

	for i, seg := range p.segs {
		if seg == "**" {
			return true
		}
		if i >= len(parts) {
			return false
		}
		if seg == "*" || isVar(seg) {
			continue
		}
		if seg != parts[i] {
			return false
		}
	}
	return len(parts) == len(p.segs)
}

// Strip quita n segmentos del frente, igual que el filtro StripPrefix del gateway.
func (p PathPattern) Strip(n int) PathPattern {
	if n <= 0 {
		return p
	}
	if n >= len(p.segs) {
		return PathPattern{raw: "/", segs: nil}
	}
	segs := append([]string(nil), p.segs[n:]...)
	return PathPattern{raw: "/" + strings.Join(segs, "/"), segs: segs}
}

func isVar(seg string) bool {
	return len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
