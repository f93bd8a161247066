package store_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/store"
)

func TestLoadDataset(t *testing.T) {
	t.Parallel()

	ds, err := store.LoadDataset("testdata/nodes.yaml")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	nodes := ds.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3", len(nodes))
	}

	ctx := context.Background()
	names, err := ds.ListNodes(ctx, node.Scope{Kind: node.ScopeDomain, Name: "air quality"})
	if err != nil || !slices.Equal(names, []string{"AQ-01", "AQ-02"}) {
		t.Fatalf("ListNodes = %v, %v", names, err)
	}
	if _, err := ds.FetchNode(ctx, "nope"); !errors.Is(err, store.ErrNodeNotFound) {
		t.Errorf("FetchNode(nope) err = %v", err)
	}
	if _, err := ds.ListNodes(ctx, node.Scope{Kind: node.ScopeNode, Name: "nope"}); !errors.Is(err, store.ErrNodeNotFound) {
		t.Errorf("ListNodes(node:nope) err = %v", err)
	}

	scopes, _ := ds.Scopes(ctx)
	if len(scopes) != 7 {
		t.Errorf("Scopes = %v", scopes)
	}
}

func TestParseDataset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		isJSON bool
		want   int
	}{
		{name: "json list", input: `[{"node_name":"a"},{"node_name":"b"}]`, isJSON: true, want: 2},
		{name: "json object", input: `{"nodes":[{"node_name":"a","data":[{"Timestamp":"x","t":1}]}]}`, isJSON: true, want: 1},
		{name: "yaml list", input: "- name: a\n- name: b\n", want: 2},
		{name: "yaml object", input: "nodes:\n  - name: a\n", want: 1},
		{name: "empty yaml", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nodes, err := store.ParseDataset([]byte(tt.input), tt.isJSON)
			if err != nil {
				t.Fatalf("ParseDataset: %v", err)
			}
			if len(nodes) != tt.want {
				t.Fatalf("len = %d, want %d", len(nodes), tt.want)
			}
		})
	}

	if _, err := store.ParseDataset([]byte("{"), true); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestNewDataset_Duplicates(t *testing.T) {
	t.Parallel()

	ds := store.NewDataset([]node.Node{{Name: "a", Domain: "x"}, {Name: "a", Domain: "y"}})
	n, err := ds.FetchNode(context.Background(), "a")
	if err != nil || n.Domain != "y" || len(ds.Nodes()) != 1 {
		t.Fatalf("node = %+v, %v", n, err)
	}
}
