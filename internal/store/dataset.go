package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/nodescope/internal/node"
)

// Dataset is an in-memory node source, usually loaded from a file.
type Dataset struct {
	nodes  []node.Node
	byName map[string]int
}

type datasetFile struct {
	Nodes []node.Node `json:"nodes" yaml:"nodes"`
}

// NewDataset indexes nodes by name. Later duplicates replace earlier ones.
func NewDataset(nodes []node.Node) *Dataset {
	d := &Dataset{byName: make(map[string]int, len(nodes))}
	for _, n := range nodes {
		if i, ok := d.byName[n.Name]; ok {
			d.nodes[i] = n
			continue
		}
		d.byName[n.Name] = len(d.nodes)
		d.nodes = append(d.nodes, n)
	}
	return d
}

// LoadDataset reads nodes from a JSON or YAML file. The file holds either a
// list of nodes or an object with a "nodes" list.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	nodes, err := ParseDataset(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return NewDataset(nodes), nil
}

// ParseDataset decodes a dataset document.
func ParseDataset(data []byte, isJSON bool) ([]node.Node, error) {
	if isJSON {
		var nodes []node.Node
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			err := json.Unmarshal(data, &nodes)
			return nodes, err
		}
		var file datasetFile
		err := json.Unmarshal(data, &file)
		return file.Nodes, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var nodes []node.Node
		err := root.Decode(&nodes)
		return nodes, err
	}
	var file datasetFile
	err := root.Decode(&file)
	return file.Nodes, err
}

// Nodes returns the dataset nodes in file order.
func (d *Dataset) Nodes() []node.Node {
	return slices.Clone(d.nodes)
}

// ListNodes implements pipeline.Source.
func (d *Dataset) ListNodes(_ context.Context, scope node.Scope) ([]string, error) {
	if scope.Kind == node.ScopeNode {
		if _, ok := d.byName[scope.Name]; !ok {
			return nil, fmt.Errorf("node %q: %w", scope.Name, ErrNodeNotFound)
		}
		return []string{scope.Name}, nil
	}
	var names []string
	for _, n := range d.nodes {
		if scope.Matches(n) {
			names = append(names, n.Name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// FetchNode implements pipeline.Fetcher.
func (d *Dataset) FetchNode(ctx context.Context, name string) (node.Node, error) {
	if err := ctx.Err(); err != nil {
		return node.Node{}, err
	}
	i, ok := d.byName[name]
	if !ok {
		return node.Node{}, fmt.Errorf("fetch node %q: %w", name, ErrNodeNotFound)
	}
	return d.nodes[i], nil
}

// Scopes returns every node, sensor type and domain in the dataset.
func (d *Dataset) Scopes(context.Context) ([]node.Scope, error) {
	var nodes, sensorTypes, domains []string
	for _, n := range d.nodes {
		nodes = append(nodes, n.Name)
		if n.SensorType != "" && !slices.Contains(sensorTypes, n.SensorType) {
			sensorTypes = append(sensorTypes, n.SensorType)
		}
		if n.Domain != "" && !slices.Contains(domains, n.Domain) {
			domains = append(domains, n.Domain)
		}
	}
	return collectScopes(nodes, sensorTypes, domains), nil
}
