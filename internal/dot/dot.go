// Package dot renders finished graphs as DOT language documents for
// external tooling (graphviz and friends). It defines only node and
// edge listings with their labels and tooltips; layout is the
// renderer's business. See https://graphviz.org/doc/info/lang.html.
package dot

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/flowdoc/internal/actiongraph"
	"github.com/ziadkadry99/flowdoc/internal/depgraph"
)

// Dependencies renders the flow dependency graph. Every node and edge
// appears exactly once.
func Dependencies(g *depgraph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	for _, name := range g.Nodes() {
		fmt.Fprintf(&b, "    %s;\n", quote(name))
	}
	for _, dep := range g.Dependencies() {
		for _, target := range dep.DependsOn {
			fmt.Fprintf(&b, "    %s -> %s;\n", quote(dep.Name), quote(target))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// ActionGraph renders one flow's control-flow graph with node labels,
// tooltips, and typed edge attributes.
func ActionGraph(g *actiongraph.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quote(g.FlowName))
	fmt.Fprintf(&b, "    start = %s;\n", quote(g.StartAction))
	for _, node := range g.Nodes() {
		attrs := fmt.Sprintf("label=%s", quote(node.Label))
		if node.Tooltip != "" {
			attrs += fmt.Sprintf(", tooltip=%s", quote(node.Tooltip))
		}
		fmt.Fprintf(&b, "    %s [%s];\n", quote(node.Identifier), attrs)
	}
	for _, edge := range g.Edges() {
		attrs := fmt.Sprintf("type=%s", quote(edge.Kind))
		if edge.Label != "" {
			attrs += fmt.Sprintf(", label=%s", quote(edge.Label))
		}
		if edge.IsError {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&b, "    %s -> %s [%s];\n", quote(edge.From), quote(edge.To), attrs)
	}
	b.WriteString("}\n")
	return b.String()
}

// quote wraps s as a DOT double-quoted ID, escaping quotes and turning
// real newlines into DOT's \n line breaks.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
