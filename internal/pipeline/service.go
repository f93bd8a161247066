package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kpumuk/nodescope/internal/node"
)

// Source resolves scopes to node names and loads nodes.
type Source interface {
	Fetcher
	ListNodes(ctx context.Context, scope node.Scope) ([]string, error)
}

// Service builds charts for a scope from a Source.
type Service struct {
	Source      Source
	Policy      Policy
	Concurrency int
	Logger      *slog.Logger
}

// Dashboard holds the charts of one scope from a single fan-out.
type Dashboard struct {
	Scope  node.Scope  `json:"scope"`
	Report FetchReport `json:"report"`
	Charts []Chart     `json:"charts"`
}

// NewService returns a Service with the default policy.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{
		Source:      source,
		Policy:      DefaultPolicy(),
		Concurrency: DefaultConcurrency,
		Logger:      logger,
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Service) fetch(ctx context.Context, scope node.Scope) ([]node.Node, FetchReport, error) {
	names, err := s.Source.ListNodes(ctx, scope)
	if err != nil {
		return nil, FetchReport{}, fmt.Errorf("list nodes for %s: %w", scope, err)
	}
	logger := s.logger().With("scope", scope.String())
	fetched, report := FetchAll(ctx, s.Source, names, s.Concurrency, logger)
	nodes := fetched[:0]
	for _, n := range fetched {
		if !scope.Matches(n) {
			logger.Debug("node left scope", "node", n.Name)
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, report, nil
}

// Parameters returns the parameter names of every node in the scope.
func (s *Service) Parameters(ctx context.Context, scope node.Scope) ([]string, error) {
	nodes, _, err := s.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	return node.ParameterUnion(nodes), nil
}

// Chart builds the chart of one parameter in the scope.
func (s *Service) Chart(ctx context.Context, scope node.Scope, parameter string) (Chart, error) {
	dash, err := s.Dashboard(ctx, scope, []string{parameter})
	if err != nil {
		return Chart{}, err
	}
	return dash.Charts[0], nil
}

// Dashboard fetches the scope once and builds one chart per parameter,
// concurrently. With no parameters every parameter of the scope is charted.
func (s *Service) Dashboard(ctx context.Context, scope node.Scope, parameters []string) (Dashboard, error) {
	nodes, report, err := s.fetch(ctx, scope)
	if err != nil {
		return Dashboard{}, err
	}
	if len(parameters) == 0 {
		parameters = node.ParameterUnion(nodes)
	}

	charts := make([]Chart, len(parameters))
	var g errgroup.Group
	for i, parameter := range parameters {
		g.Go(func() error {
			chart := Build(s.Policy, Input{
				Parameter: parameter,
				Rollup:    scope.Rollup(),
				Nodes:     nodes,
			})
			chart.Excluded = report.Failed
			charts[i] = chart
			return nil
		})
	}
	_ = g.Wait()

	s.logger().DebugContext(ctx, "dashboard built",
		"scope", scope.String(),
		"request_id", report.RequestID,
		"charts", len(charts),
		"excluded", len(report.Failed),
	)
	return Dashboard{Scope: scope, Report: report, Charts: charts}, nil
}
