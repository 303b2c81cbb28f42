// Package actiongraph builds the per-flow control-flow graph: one node
// per action with a derived display label, and one typed edge per
// transition (default, error, condition). A single pair of actions may
// be connected by several edges of different kinds, so the graph is a
// multigraph.
package actiongraph

import (
	"fmt"

	"github.com/ziadkadry99/flowdoc/internal/model"
	"github.com/ziadkadry99/flowdoc/internal/resolver"
	"github.com/ziadkadry99/flowdoc/internal/usage"
)

// Edge kinds. Error edges use the transition's error type as their kind
// instead of a fixed constant.
const (
	KindDefault   = "Default"
	KindCondition = "Condition"
)

// Node is one action in the control-flow graph.
type Node struct {
	Identifier string
	Type       model.ActionType
	Label      string
	Tooltip    string
	Action     *model.Action
}

// Edge is one transition between two actions.
type Edge struct {
	From       string
	To         string
	Kind       string
	IsError    bool
	Label      string
	Condition  *model.Condition
	Parameters map[string]any
}

// Graph is the finished control-flow graph for one flow.
type Graph struct {
	FlowName    string
	StartAction string

	nodes map[string]*Node
	order []string
	edges []Edge

	// Terminals lists the identifiers of actions whose type ends the
	// contact's path through this flow.
	Terminals []string
}

// Nodes returns the graph's nodes in action-list order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Node returns the node with the given identifier, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Edges returns the graph's edges in derivation order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// MalformedActionError reports an action entry missing a field its
// declared type requires. A partially built graph is unsafe to report
// as complete, so this aborts the whole flow's pass.
type MalformedActionError struct {
	Flow   string
	Action string
	Type   model.ActionType
	Field  string
}

func (e *MalformedActionError) Error() string {
	return fmt.Sprintf("flow %q: action %s (%s): missing or malformed field %q", e.Flow, e.Action, e.Type, e.Field)
}

// Options configures graph construction. Both lists were once package
// state in an earlier incarnation of this tool; they are explicit here
// so independent analyses in one process cannot leak into each other.
type Options struct {
	// TerminalTypes are the action types recorded as flow exits.
	TerminalTypes []model.ActionType
	// ErrorFilter restricts error-transition edges to the listed error
	// types. Empty means every error transition becomes an edge, which
	// is the default policy.
	ErrorFilter []string
}

// Builder constructs control-flow graphs, consulting the resolver for
// cross-flow display names and feeding the usage aggregator as it walks
// the action list.
type Builder struct {
	resolver  *resolver.Table
	usage     *usage.Aggregator
	terminals map[model.ActionType]bool
	errFilter map[string]bool
}

// NewBuilder returns a Builder using the given collaborators.
func NewBuilder(res *resolver.Table, agg *usage.Aggregator, opts Options) *Builder {
	b := &Builder{
		resolver:  res,
		usage:     agg,
		terminals: make(map[model.ActionType]bool, len(opts.TerminalTypes)),
	}
	for _, t := range opts.TerminalTypes {
		b.terminals[t] = true
	}
	if len(opts.ErrorFilter) > 0 {
		b.errFilter = make(map[string]bool, len(opts.ErrorFilter))
		for _, e := range opts.ErrorFilter {
			b.errFilter[e] = true
		}
	}
	return b
}

// Build constructs the control-flow graph for one flow. Nodes are built
// in a first pass over the action list, edges in a second, so edge
// derivation always sees the complete node set.
func (b *Builder) Build(flow *model.Flow, content *model.Content) (*Graph, error) {
	g := &Graph{
		FlowName:    flow.Name,
		StartAction: content.StartAction,
		nodes:       make(map[string]*Node, len(content.Actions)),
	}

	for i := range content.Actions {
		action := &content.Actions[i]
		label, tooltip, err := b.describe(flow, action)
		if err != nil {
			return nil, err
		}
		g.nodes[action.Identifier] = &Node{
			Identifier: action.Identifier,
			Type:       action.Type,
			Label:      label,
			Tooltip:    tooltip,
			Action:     action,
		}
		g.order = append(g.order, action.Identifier)
	}

	for _, id := range g.order {
		node := g.nodes[id]
		if b.terminals[node.Type] {
			g.Terminals = append(g.Terminals, id)
		}
		b.addEdges(g, node)
	}

	return g, nil
}

// addEdges derives the outgoing edges of one action from its
// Transitions block.
func (b *Builder) addEdges(g *Graph, node *Node) {
	tr := node.Action.Transitions

	// Compare and participant-input actions express their real
	// successors via conditions and errors; a literal next action on
	// them is ambiguous and produces no edge.
	if tr.NextAction != "" && node.Type != model.ActionCompare && node.Type != model.ActionGetParticipantInput {
		g.edges = append(g.edges, Edge{
			From: node.Identifier,
			To:   tr.NextAction,
			Kind: KindDefault,
		})
	}

	for _, e := range tr.Errors {
		if b.errFilter != nil && !b.errFilter[e.ErrorType] {
			continue
		}
		g.edges = append(g.edges, Edge{
			From:    node.Identifier,
			To:      e.NextAction,
			Kind:    e.ErrorType,
			IsError: true,
			Label:   e.ErrorType,
		})
	}

	for _, c := range tr.Conditions {
		cond := c.Condition
		g.edges = append(g.edges, Edge{
			From:       node.Identifier,
			To:         c.NextAction,
			Kind:       KindCondition,
			Label:      fmt.Sprintf("%s %v", cond.Operator, cond.Operands),
			Condition:  &cond,
			Parameters: node.Action.Parameters,
		})
	}
}
