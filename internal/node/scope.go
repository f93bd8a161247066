package node

import (
	"fmt"
	"strings"
)

// ScopeKind selects which nodes a view covers.
type ScopeKind int

const (
	// ScopeNode is a single-node view.
	ScopeNode ScopeKind = iota
	// ScopeSensorType rolls up every node of a sensor type.
	ScopeSensorType
	// ScopeDomain rolls up every node of a domain.
	ScopeDomain
)

var scopePrefixes = map[ScopeKind]string{
	ScopeNode:       "node",
	ScopeSensorType: "sensor_type",
	ScopeDomain:     "domain",
}

// Scope names a single node or a rollup.
type Scope struct {
	Kind ScopeKind
	Name string
}

// Rollup reports whether the scope aggregates several nodes.
func (s Scope) Rollup() bool {
	return s.Kind != ScopeNode
}

// String renders the scope as "kind:name".
func (s Scope) String() string {
	return scopePrefixes[s.Kind] + ":" + s.Name
}

// Matches reports whether a node belongs to the scope.
func (s Scope) Matches(n Node) bool {
	switch s.Kind {
	case ScopeSensorType:
		return n.SensorType == s.Name
	case ScopeDomain:
		return n.Domain == s.Name
	default:
		return n.Name == s.Name
	}
}

// ParseScope parses "node:NAME", "sensor_type:NAME" or "domain:NAME".
// A bare name is a node.
func ParseScope(s string) (Scope, error) {
	prefix, name, found := strings.Cut(s, ":")
	if !found {
		prefix, name = "node", s
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Scope{}, fmt.Errorf("parse scope %q: missing name", s)
	}
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(prefix)), "-", "_") {
	case "node":
		return Scope{Kind: ScopeNode, Name: name}, nil
	case "sensor_type", "type":
		return Scope{Kind: ScopeSensorType, Name: name}, nil
	case "domain":
		return Scope{Kind: ScopeDomain, Name: name}, nil
	}
	return Scope{}, fmt.Errorf("parse scope %q: unknown kind %q", s, prefix)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
