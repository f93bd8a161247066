package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kpumuk/nodescope/internal/node"
)

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadDataset("testdata/nodes.yaml")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	return ds
}

func TestClient_SaveAndFetchNode(t *testing.T) {
	t.Parallel()

	mr, client := setupTestRedis(t)
	ctx := context.Background()

	if err := client.SaveNodes(ctx, loadSample(t).Nodes()); err != nil {
		t.Fatalf("SaveNodes: %v", err)
	}

	if got := mr.HGet("node:AQ-01", "sensor_type"); got != "aq" {
		t.Errorf("node hash sensor_type = %q", got)
	}
	members, err := mr.ZMembers("node:AQ-01:rows")
	if err != nil || len(members) != 3 {
		t.Fatalf("rows = %v, %v", members, err)
	}
	score, err := mr.ZScore("node:AQ-01:rows", members[0])
	if err != nil || score != 1704067200000 {
		t.Errorf("first row score = %v, %v", score, err)
	}

	n, err := client.FetchNode(ctx, "AQ-01")
	if err != nil {
		t.Fatalf("FetchNode: %v", err)
	}
	if n.Domain != "air quality" || len(n.Parameters) != 2 || len(n.Rows) != 3 {
		t.Fatalf("node = %+v", n)
	}
	if n.Rows[0].Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("rows not ordered by time: %+v", n.Rows)
	}
	if n.Thresholds("pm2.5") == nil {
		t.Error("thresholds lost in round trip")
	}
	if got := n.Series("temperature"); len(got) != 3 || got[1].Value != nil {
		t.Errorf("temperature series = %+v", got)
	}
}

func TestClient_FetchNodeNotFound(t *testing.T) {
	t.Parallel()

	_, client := setupTestRedis(t)
	_, err := client.FetchNode(context.Background(), "missing")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestClient_SkipsMalformedRows(t *testing.T) {
	t.Parallel()

	mr, client := setupTestRedis(t)
	mr.HSet("node:X", "domain", "d", "sensor_type", "s", "parameters", `[{"name":"t"}]`)
	if _, err := mr.ZAdd("node:X:rows", 1, `{"Timestamp":"2024-01-01T00:00:00Z","t":1}`); err != nil {
		t.Fatal(err)
	}
	if _, err := mr.ZAdd("node:X:rows", 2, `not json`); err != nil {
		t.Fatal(err)
	}

	n, err := client.FetchNode(context.Background(), "X")
	if err != nil {
		t.Fatalf("FetchNode: %v", err)
	}
	if len(n.Rows) != 1 {
		t.Fatalf("rows = %+v", n.Rows)
	}
}

func TestClient_ListNodes(t *testing.T) {
	t.Parallel()

	_, client := setupTestRedis(t)
	ctx := context.Background()
	if err := client.SaveNodes(ctx, loadSample(t).Nodes()); err != nil {
		t.Fatalf("SaveNodes: %v", err)
	}

	tests := []struct {
		scope node.Scope
		want  []string
	}{
		{node.Scope{Kind: node.ScopeSensorType, Name: "aq"}, []string{"AQ-01", "AQ-02"}},
		{node.Scope{Kind: node.ScopeDomain, Name: "water"}, []string{"W-01"}},
		{node.Scope{Kind: node.ScopeDomain, Name: "soil"}, nil},
		{node.Scope{Kind: node.ScopeNode, Name: "AQ-02"}, []string{"AQ-02"}},
	}
	for _, tt := range tests {
		got, err := client.ListNodes(ctx, tt.scope)
		if err != nil {
			t.Fatalf("ListNodes(%v): %v", tt.scope, err)
		}
		if len(got) != len(tt.want) || (len(tt.want) > 0 && !slices.Equal(got, tt.want)) {
			t.Errorf("ListNodes(%v) = %v, want %v", tt.scope, got, tt.want)
		}
	}

	if _, err := client.ListNodes(ctx, node.Scope{Kind: node.ScopeNode, Name: "nope"}); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("missing node err = %v", err)
	}

	scopes, err := client.Scopes(ctx)
	if err != nil {
		t.Fatalf("Scopes: %v", err)
	}
	var names []string
	for _, s := range scopes {
		names = append(names, s.String())
	}
	want := []string{
		"domain:air quality", "domain:water",
		"sensor_type:aq", "sensor_type:ph",
		"node:AQ-01", "node:AQ-02", "node:W-01",
	}
	if !slices.Equal(names, want) {
		t.Errorf("Scopes = %v, want %v", names, want)
	}
}

func TestClient_SaveNodesReplacesRows(t *testing.T) {
	t.Parallel()

	mr, client := setupTestRedis(t)
	ctx := context.Background()
	n := node.Node{Name: "T", Rows: []node.Row{
		{Timestamp: "2024-01-01T00:00:00Z", Values: map[string]any{"t": 1}},
		{Timestamp: "2024-01-01T01:00:00Z", Values: map[string]any{"t": 2}},
	}}
	if err := client.SaveNodes(ctx, []node.Node{n}); err != nil {
		t.Fatal(err)
	}
	n.Rows = n.Rows[:1]
	if err := client.SaveNodes(ctx, []node.Node{n}); err != nil {
		t.Fatal(err)
	}
	members, _ := mr.ZMembers("node:T:rows")
	if len(members) != 1 {
		t.Fatalf("rows after resave = %v", members)
	}

	if err := client.SaveNodes(ctx, []node.Node{{}}); err == nil {
		t.Error("SaveNodes should reject unnamed nodes")
	}
}

func TestClient_SaveNodesMovesRollups(t *testing.T) {
	t.Parallel()

	mr, client := setupTestRedis(t)
	ctx := context.Background()
	n := node.Node{Name: "N1", Domain: "old", SensorType: "aq", Rows: []node.Row{
		{Timestamp: "2024-01-01T00:00:00Z", Values: map[string]any{"x": 2}},
	}}
	if err := client.SaveNodes(ctx, []node.Node{n}); err != nil {
		t.Fatal(err)
	}
	n.Domain, n.SensorType = "new", "wq"
	if err := client.SaveNodes(ctx, []node.Node{n}); err != nil {
		t.Fatal(err)
	}

	if ok, _ := mr.SIsMember("domain:old", "N1"); ok {
		t.Error("N1 still in domain:old")
	}
	if ok, _ := mr.SIsMember("sensor_type:aq", "N1"); ok {
		t.Error("N1 still in sensor_type:aq")
	}
	if ok, _ := mr.SIsMember("domain:new", "N1"); !ok {
		t.Error("N1 missing from domain:new")
	}
	if ok, _ := mr.SIsMember("domains", "old"); ok {
		t.Error("empty domain old still indexed")
	}

	names, err := client.ListNodes(ctx, node.Scope{Kind: node.ScopeDomain, Name: "old"})
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("domain:old = %v, want empty", names)
	}
	names, _ = client.ListNodes(ctx, node.Scope{Kind: node.ScopeSensorType, Name: "wq"})
	if !slices.Equal(names, []string{"N1"}) {
		t.Errorf("sensor_type:wq = %v", names)
	}
}
