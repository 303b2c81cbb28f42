// Package depgraph builds the flow-level dependency graph: one node per
// flow name, one edge per distinct (source, target) reference. Edge
// direction is "source depends on target", so a valid deployment order
// lists targets before the flows that reference them.
package depgraph

import "fmt"

// Graph is a directed graph over flow names. Nodes are created for every
// registered flow and for every reference target, whether or not the
// target was ever registered itself. Edges form a set: repeated
// references collapse to one edge.
type Graph struct {
	order   []string
	index   map[string]int
	targets map[string][]string
	edges   map[string]map[string]bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		index:   make(map[string]int),
		targets: make(map[string][]string),
		edges:   make(map[string]map[string]bool),
	}
}

// AddFlow ensures a node exists for name. Safe to call repeatedly.
func (g *Graph) AddFlow(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.order)
	g.order = append(g.order, name)
}

// AddReference ensures an edge from source to target exists, creating
// either node as needed. Duplicate calls are no-ops.
func (g *Graph) AddReference(source, target string) {
	g.AddFlow(source)
	g.AddFlow(target)
	if g.edges[source] == nil {
		g.edges[source] = make(map[string]bool)
	}
	if g.edges[source][target] {
		return
	}
	g.edges[source][target] = true
	g.targets[source] = append(g.targets[source], target)
}

// Nodes returns all flow names in registration order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// DependenciesOf returns the direct reference targets of name in
// discovery order. The transitive closure is not computed.
func (g *Graph) DependenciesOf(name string) []string {
	deps := make([]string, len(g.targets[name]))
	copy(deps, g.targets[name])
	return deps
}

// Dependency pairs a flow name with its direct dependencies.
type Dependency struct {
	Name      string   `json:"name"`
	DependsOn []string `json:"dependsOn"`
}

// Dependencies returns the per-flow dependency listing for every node,
// in registration order.
func (g *Graph) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(g.order))
	for _, name := range g.order {
		deps = append(deps, Dependency{Name: name, DependsOn: g.DependenciesOf(name)})
	}
	return deps
}

// NotAcyclicError reports that a dependency order was requested on a
// graph containing at least one cycle, for which no order exists.
type NotAcyclicError struct {
	Cycles [][]string
}

func (e *NotAcyclicError) Error() string {
	return fmt.Sprintf("dependency graph contains %d cycle(s), no deployment order exists", len(e.Cycles))
}

// DependencyOrder returns all flow names in reverse topological order:
// every target appears before the flows that reference it, so deploying
// in the returned order never deploys a flow before its dependencies.
// Ties are broken by first-registration order, making the result
// reproducible for a given input order. Returns a *NotAcyclicError when
// the graph is cyclic.
func (g *Graph) DependencyOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.order))
	for _, src := range g.order {
		for _, tgt := range g.targets[src] {
			indegree[tgt]++
		}
	}

	visited := make(map[string]bool, len(g.order))
	sorted := make([]string, 0, len(g.order))
	for len(sorted) < len(g.order) {
		progressed := false
		for _, name := range g.order {
			if visited[name] || indegree[name] != 0 {
				continue
			}
			visited[name] = true
			sorted = append(sorted, name)
			for _, tgt := range g.targets[name] {
				indegree[tgt]--
			}
			progressed = true
		}
		if !progressed {
			return nil, &NotAcyclicError{Cycles: g.Cycles()}
		}
	}

	// The scan above orders sources before their targets; deployment
	// needs the reverse.
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted, nil
}

// HasCycles reports whether at least one directed cycle exists.
func (g *Graph) HasCycles() bool {
	return len(g.Cycles()) > 0
}

// Cycles enumerates every simple directed cycle as an ordered sequence
// of flow names returning to its start. Each cycle is reported once,
// anchored at its earliest-registered member; no ordering is guaranteed
// across cycles.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, start := range g.order {
		g.search(start, start, []string{start}, map[string]bool{start: true}, &cycles)
	}
	return cycles
}

// search walks outgoing edges from current, extending path until it
// closes back on start. Nodes registered before start are skipped so a
// cycle is only found from its earliest member.
func (g *Graph) search(start, current string, path []string, onPath map[string]bool, out *[][]string) {
	for _, next := range g.targets[current] {
		if next == start {
			cycle := make([]string, len(path))
			copy(cycle, path)
			*out = append(*out, cycle)
			continue
		}
		if g.index[next] < g.index[start] || onPath[next] {
			continue
		}
		onPath[next] = true
		g.search(start, next, append(path, next), onPath, out)
		delete(onPath, next)
	}
}
