package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/series"
)

const (
	nodesKey            = "nodes"
	domainsKey          = "domains"
	sensorTypesKey      = "sensor_types"
	domainPrefixKey     = "domain:"
	sensorTypePrefixKey = "sensor_type:"
	nodePrefixKey       = "node:"
	rowsSuffixKey       = ":rows"
)

func nodeKey(name string) string {
	return nodePrefixKey + name
}

func rowsKey(name string) string {
	return nodePrefixKey + name + rowsSuffixKey
}

func scopeKey(scope node.Scope) string {
	switch scope.Kind {
	case node.ScopeDomain:
		return domainPrefixKey + scope.Name
	case node.ScopeSensorType:
		return sensorTypePrefixKey + scope.Name
	default:
		return ""
	}
}

// ListNodes returns the sorted names of the nodes in a scope. A node scope
// naming a missing node fails with ErrNodeNotFound; an empty rollup does not.
func (c *Client) ListNodes(ctx context.Context, scope node.Scope) ([]string, error) {
	if scope.Kind == node.ScopeNode {
		exists, err := c.redis.Exists(ctx, nodeKey(scope.Name)).Result()
		if err != nil {
			return nil, fmt.Errorf("check node %q: %w", scope.Name, err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("node %q: %w", scope.Name, ErrNodeNotFound)
		}
		return []string{scope.Name}, nil
	}

	names, err := c.redis.SMembers(ctx, scopeKey(scope)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list %s: %w", scope, err)
	}
	slices.Sort(names)
	return names, nil
}

// Scopes returns every node, sensor type and domain known to the store.
func (c *Client) Scopes(ctx context.Context) ([]node.Scope, error) {
	var nodes, sensorTypes, domains *redis.StringSliceCmd
	_, err := c.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		nodes = pipe.SMembers(ctx, nodesKey)
		sensorTypes = pipe.SMembers(ctx, sensorTypesKey)
		domains = pipe.SMembers(ctx, domainsKey)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	return collectScopes(nodes.Val(), sensorTypes.Val(), domains.Val()), nil
}

func collectScopes(nodes, sensorTypes, domains []string) []node.Scope {
	var scopes []node.Scope
	add := func(kind node.ScopeKind, names []string) {
		names = slices.Clone(names)
		slices.Sort(names)
		for _, name := range names {
			if name != "" {
				scopes = append(scopes, node.Scope{Kind: kind, Name: name})
			}
		}
	}
	add(node.ScopeDomain, domains)
	add(node.ScopeSensorType, sensorTypes)
	add(node.ScopeNode, nodes)
	return scopes
}

// FetchNode loads a node with all of its rows, oldest first.
func (c *Client) FetchNode(ctx context.Context, name string) (node.Node, error) {
	var meta *redis.MapStringStringCmd
	var rows *redis.StringSliceCmd
	_, err := c.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		meta = pipe.HGetAll(ctx, nodeKey(name))
		rows = pipe.ZRange(ctx, rowsKey(name), 0, -1)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return node.Node{}, fmt.Errorf("fetch node %q: %w", name, err)
	}

	fields := meta.Val()
	if len(fields) == 0 {
		return node.Node{}, fmt.Errorf("fetch node %q: %w", name, ErrNodeNotFound)
	}

	n := node.Node{
		Name:       name,
		Domain:     fields["domain"],
		SensorType: fields["sensor_type"],
	}
	if raw := fields["parameters"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &n.Parameters); err != nil {
			return node.Node{}, fmt.Errorf("decode parameters of %q: %w", name, err)
		}
	}

	members := rows.Val()
	n.Rows = make([]node.Row, 0, len(members))
	for _, member := range members {
		var row node.Row
		// Malformed rows are skipped like any other unusable reading.
		if err := json.Unmarshal([]byte(member), &row); err != nil {
			continue
		}
		n.Rows = append(n.Rows, row)
	}
	return n, nil
}

// SaveNodes writes nodes and their index entries, replacing any previous
// rows of the same nodes. A node moved to another domain or sensor type is
// dropped from its old rollup.
func (c *Client) SaveNodes(ctx context.Context, nodes []node.Node) error {
	for _, n := range nodes {
		if n.Name == "" {
			return errors.New("save nodes: node without a name")
		}
		parameters, err := json.Marshal(n.Parameters)
		if err != nil {
			return fmt.Errorf("encode parameters of %q: %w", n.Name, err)
		}
		members, err := rowMembers(n.Rows)
		if err != nil {
			return fmt.Errorf("encode rows of %q: %w", n.Name, err)
		}

		previous, err := c.redis.HMGet(ctx, nodeKey(n.Name), "domain", "sensor_type").Result()
		if err != nil {
			return fmt.Errorf("read node %q: %w", n.Name, err)
		}
		oldDomain, _ := previous[0].(string)
		oldSensorType, _ := previous[1].(string)

		_, err = c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if oldDomain != "" && oldDomain != n.Domain {
				pipe.SRem(ctx, domainPrefixKey+oldDomain, n.Name)
			}
			if oldSensorType != "" && oldSensorType != n.SensorType {
				pipe.SRem(ctx, sensorTypePrefixKey+oldSensorType, n.Name)
			}
			pipe.SAdd(ctx, nodesKey, n.Name)
			if n.Domain != "" {
				pipe.SAdd(ctx, domainsKey, n.Domain)
				pipe.SAdd(ctx, domainPrefixKey+n.Domain, n.Name)
			}
			if n.SensorType != "" {
				pipe.SAdd(ctx, sensorTypesKey, n.SensorType)
				pipe.SAdd(ctx, sensorTypePrefixKey+n.SensorType, n.Name)
			}
			pipe.HSet(ctx, nodeKey(n.Name),
				"domain", n.Domain,
				"sensor_type", n.SensorType,
				"parameters", string(parameters),
			)
			pipe.Del(ctx, rowsKey(n.Name))
			if len(members) > 0 {
				pipe.ZAdd(ctx, rowsKey(n.Name), members...)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("save node %q: %w", n.Name, err)
		}
		if oldDomain != "" && oldDomain != n.Domain {
			if err := c.pruneRollup(ctx, domainsKey, domainPrefixKey, oldDomain); err != nil {
				return err
			}
		}
		if oldSensorType != "" && oldSensorType != n.SensorType {
			if err := c.pruneRollup(ctx, sensorTypesKey, sensorTypePrefixKey, oldSensorType); err != nil {
				return err
			}
		}
	}
	return nil
}

// pruneRollup forgets a domain or sensor type once no node belongs to it.
func (c *Client) pruneRollup(ctx context.Context, indexKey, prefix, name string) error {
	count, err := c.redis.SCard(ctx, prefix+name).Result()
	if err != nil {
		return fmt.Errorf("count %s%s: %w", prefix, name, err)
	}
	if count > 0 {
		return nil
	}
	if err := c.redis.SRem(ctx, indexKey, name).Err(); err != nil {
		return fmt.Errorf("prune %s%s: %w", prefix, name, err)
	}
	return nil
}

// rowMembers encodes rows scored by their time in unix milliseconds. Rows
// with unparseable timestamps score 0 and are still kept.
func rowMembers(rows []node.Row) ([]redis.Z, error) {
	members := make([]redis.Z, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		var score float64
		if t, ok := series.ParseTime(row.Timestamp); ok {
			score = float64(t.UnixMilli())
		}
		members = append(members, redis.Z{Score: score, Member: string(data)})
	}
	return members, nil
}
