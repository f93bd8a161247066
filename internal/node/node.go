// Package node models one sensor node as delivered by the resource layer:
// its parameters with their thresholds and its time-stamped reading rows.
package node

import (
	"slices"

	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/thresholds"
)

// Parameter is a named measurement with its three threshold zones.
type Parameter struct {
	Name     string              `json:"name" yaml:"name"`
	Unit     string              `json:"unit,omitempty" yaml:"unit,omitempty"`
	Ideal    thresholds.RawRange `json:"ideal" yaml:"ideal"`
	Moderate thresholds.RawRange `json:"moderate" yaml:"moderate"`
	Extreme  thresholds.RawRange `json:"extreme" yaml:"extreme"`
}

// Thresholds returns the normalized threshold set, nil when none is usable.
func (p Parameter) Thresholds() *thresholds.Set {
	return thresholds.NewSet(p.Ideal, p.Moderate, p.Extreme)
}

// Node is a sensor node. Nodes are owned by the resource layer; nothing in
// this module mutates them.
type Node struct {
	Name       string      `json:"node_name" yaml:"name"`
	Domain     string      `json:"domain_name" yaml:"domain"`
	SensorType string      `json:"sensor_type" yaml:"sensor_type"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
	Rows       []Row       `json:"data" yaml:"data"`
}

// ParameterNames returns parameter names in declaration order.
func (n Node) ParameterNames() []string {
	names := make([]string, 0, len(n.Parameters))
	for _, p := range n.Parameters {
		names = append(names, p.Name)
	}
	return names
}

// Parameter looks up a parameter by name.
func (n Node) Parameter(name string) (Parameter, bool) {
	i := slices.IndexFunc(n.Parameters, func(p Parameter) bool { return p.Name == name })
	if i < 0 {
		return Parameter{}, false
	}
	return n.Parameters[i], true
}

// Thresholds returns the normalized thresholds for a parameter.
func (n Node) Thresholds(name string) *thresholds.Set {
	p, ok := n.Parameter(name)
	if !ok {
		return nil
	}
	return p.Thresholds()
}

// Unit returns the display unit for a parameter, falling back to DefaultUnit.
func (n Node) Unit(name string) string {
	if p, ok := n.Parameter(name); ok && p.Unit != "" {
		return p.Unit
	}
	return DefaultUnit(name)
}

// Series extracts the raw readings of one parameter. Rows without a
// timestamp or without the parameter key are skipped; a present but null
// value is kept so it renders as a gap.
func (n Node) Series(name string) []series.RawReading {
	out := make([]series.RawReading, 0, len(n.Rows))
	for _, row := range n.Rows {
		if row.Timestamp == "" {
			continue
		}
		value, ok := row.Values[name]
		if !ok {
			continue
		}
		out = append(out, series.RawReading{Timestamp: row.Timestamp, Value: value})
	}
	return out
}

// SeriesFor extracts one parameter's readings from every node.
func SeriesFor(nodes []Node, name string) []series.NodeSeries {
	out := make([]series.NodeSeries, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, series.NodeSeries{Node: n.Name, Readings: n.Series(name)})
	}
	return out
}

// FirstThresholds returns the thresholds of the first node that has usable
// ones for the parameter.
func FirstThresholds(nodes []Node, name string) *thresholds.Set {
	for _, n := range nodes {
		if set := n.Thresholds(name); set != nil {
			return set
		}
	}
	return nil
}

// FirstUnit returns the first non-empty unit declared for the parameter.
func FirstUnit(nodes []Node, name string) string {
	for _, n := range nodes {
		if p, ok := n.Parameter(name); ok && p.Unit != "" {
			return p.Unit
		}
	}
	return DefaultUnit(name)
}

// ParameterUnion returns the parameter names of all nodes, first node first,
// without duplicates.
func ParameterUnion(nodes []Node) []string {
	var names []string
	for _, n := range nodes {
		for _, name := range n.ParameterNames() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

var defaultUnits = map[string]string{
	"pm2.5":             "μg/m³",
	"pm10":              "μg/m³",
	"temperature":       "°C",
	"relative_humidity": "%",
}

// DefaultUnit returns the conventional unit for well-known parameters.
func DefaultUnit(name string) string {
	return defaultUnits[name]
}
