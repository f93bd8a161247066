package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kpumuk/nodescope/internal/node"
)

// Fetcher loads one node with its readings.
type Fetcher interface {
	FetchNode(ctx context.Context, name string) (node.Node, error)
}

// DefaultConcurrency bounds FetchAll when no limit is given.
const DefaultConcurrency = 8

// NodeFailure records a node left out of a fan-out.
type NodeFailure struct {
	Node string
	Err  error
}

// MarshalJSON implements json.Marshaler.
func (f NodeFailure) MarshalJSON() ([]byte, error) {
	var msg string
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Node  string `json:"node"`
		Error string `json:"error"`
	}{f.Node, msg})
}

// FetchReport describes one fan-out.
type FetchReport struct {
	RequestID string        `json:"request_id"`
	Requested int           `json:"requested"`
	Failed    []NodeFailure `json:"failed,omitempty"`
}

// Fetched returns the number of nodes that loaded.
func (r FetchReport) Fetched() int {
	return r.Requested - len(r.Failed)
}

// Partial reports whether some but not all nodes failed.
func (r FetchReport) Partial() bool {
	return len(r.Failed) > 0 && len(r.Failed) < r.Requested
}

// FetchAll loads every named node concurrently, at most limit at a time, and
// waits for all of them. A failed node is logged and reported but never
// fails the join; the loaded nodes keep the order of names.
func FetchAll(ctx context.Context, f Fetcher, names []string, limit int, logger *slog.Logger) ([]node.Node, FetchReport) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	report := FetchReport{RequestID: uuid.NewString(), Requested: len(names)}
	logger = logger.With("request_id", report.RequestID)

	nodes := make([]node.Node, len(names))
	errs := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			n, err := f.FetchNode(ctx, name)
			if err != nil {
				errs[i] = err
				return nil
			}
			nodes[i] = n
			return nil
		})
	}
	_ = g.Wait()

	out := make([]node.Node, 0, len(names))
	for i, name := range names {
		if errs[i] != nil {
			logger.WarnContext(ctx, "node fetch failed", "node", name, "error", errs[i])
			report.Failed = append(report.Failed, NodeFailure{Node: name, Err: errs[i]})
			continue
		}
		out = append(out, nodes[i])
	}

	logger.DebugContext(ctx, "nodes fetched", "requested", report.Requested, "failed", len(report.Failed))
	return out, report
}
