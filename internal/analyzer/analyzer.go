// Package analyzer orchestrates the full analysis: it feeds every flow
// to both the dependency engine (reference extraction → dependency
// graph) and the per-flow engine (action graph + usage aggregation),
// after registering each flow's identifier/name pair with the resolver.
//
// Processing is strictly sequential. Callers wanting any parallelism
// must Register every flow before the first Process call, since label
// derivation for cross-flow references depends on a fully populated
// resolver, and must funnel Process calls through a single goroutine
// because the dependency graph and the global usage views accumulate
// state across flows.
package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/ziadkadry99/flowdoc/internal/actiongraph"
	"github.com/ziadkadry99/flowdoc/internal/config"
	"github.com/ziadkadry99/flowdoc/internal/depgraph"
	"github.com/ziadkadry99/flowdoc/internal/dot"
	"github.com/ziadkadry99/flowdoc/internal/model"
	"github.com/ziadkadry99/flowdoc/internal/refs"
	"github.com/ziadkadry99/flowdoc/internal/resolver"
	"github.com/ziadkadry99/flowdoc/internal/usage"
)

// Analyzer holds all engine state for one analysis session. Sessions
// are independent: nothing is shared between two Analyzers.
type Analyzer struct {
	resolver  *resolver.Table
	deps      *depgraph.Graph
	aggregate *usage.Aggregator
	extractor *refs.Extractor
	builder   *actiongraph.Builder

	flows  map[string]*model.Flow // keyed by name||type
	graphs map[string]*actiongraph.Graph
	keys   []string // processing order of flows map keys
}

// New creates an Analyzer from configuration. The reference paths are
// compiled here, so a bad path fails fast instead of during processing.
func New(cfg *config.Config) (*Analyzer, error) {
	extractor, err := refs.NewExtractor(cfg.FlowReferencePaths, cfg.ModuleReferencePaths)
	if err != nil {
		return nil, err
	}

	terminals := make([]model.ActionType, 0, len(cfg.TerminalTypes))
	for _, t := range cfg.TerminalTypes {
		terminals = append(terminals, model.ActionType(t))
	}

	res := resolver.New()
	agg := usage.NewAggregator()
	return &Analyzer{
		resolver:  res,
		deps:      depgraph.New(),
		aggregate: agg,
		extractor: extractor,
		builder: actiongraph.NewBuilder(res, agg, actiongraph.Options{
			TerminalTypes: terminals,
			ErrorFilter:   cfg.ErrorFilter,
		}),
		flows:  make(map[string]*model.Flow),
		graphs: make(map[string]*actiongraph.Graph),
	}, nil
}

// Register records the flow's identifier/name pair with the resolver
// and ensures a dependency graph node exists. Flows without a type are
// modules. Idempotent; Process calls it again harmlessly.
func (a *Analyzer) Register(flow *model.Flow) {
	if flow.Type == "" {
		flow.Type = model.TypeModule
	}
	a.resolver.Register(flow.ID, flow.Name)
	a.deps.AddFlow(flow.Name)
}

// Process runs the full per-flow analysis: dependency references,
// control-flow graph, and usage aggregation. The finished graph's DOT
// rendering is attached to the flow alongside the per-flow usage views.
// A failure leaves the dependency graph's existing state intact but
// records nothing for this flow's action graph.
func (a *Analyzer) Process(flow *model.Flow) error {
	a.Register(flow)

	content, err := flow.DecodeContent()
	if err != nil {
		return err
	}

	// The extractor queries the untyped decoded form, since reference
	// metadata lives outside the typed action entries.
	var raw map[string]any
	if err := json.Unmarshal([]byte(flow.Content), &raw); err != nil {
		return fmt.Errorf("flow %q: decoding content: %w", flow.Name, err)
	}
	for _, target := range a.extractor.Extract(raw, refs.KindModule) {
		a.deps.AddReference(flow.Name, target)
	}
	for _, target := range a.extractor.Extract(raw, refs.KindFlow) {
		a.deps.AddReference(flow.Name, target)
	}

	graph, err := a.builder.Build(flow, content)
	if err != nil {
		return err
	}
	flow.GraphDOT = dot.ActionGraph(graph)

	key := flow.Key()
	if _, seen := a.flows[key]; !seen {
		a.keys = append(a.keys, key)
	}
	a.flows[key] = flow
	a.graphs[flow.Name] = graph
	return nil
}

// Flows returns the processed flows in processing order.
func (a *Analyzer) Flows() []*model.Flow {
	flows := make([]*model.Flow, 0, len(a.keys))
	for _, key := range a.keys {
		flows = append(flows, a.flows[key])
	}
	return flows
}

// ActionGraph returns the control-flow graph built for the named flow,
// or nil if the flow has not been processed.
func (a *Analyzer) ActionGraph(name string) *actiongraph.Graph {
	return a.graphs[name]
}

// Dependencies returns the flow dependency graph.
func (a *Analyzer) Dependencies() *depgraph.Graph {
	return a.deps
}

// Usage returns the global usage views.
func (a *Analyzer) Usage() *usage.Aggregator {
	return a.aggregate
}

// Resolver returns the identifier/name table.
func (a *Analyzer) Resolver() *resolver.Table {
	return a.resolver
}
