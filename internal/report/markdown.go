// Package report turns a finished analysis into markdown documentation,
// renders it to a static HTML site, and can serve the result locally.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ziadkadry99/flowdoc/internal/analyzer"
	"github.com/ziadkadry99/flowdoc/internal/dot"
	"github.com/ziadkadry99/flowdoc/internal/model"
	"github.com/ziadkadry99/flowdoc/internal/usage"
)

// Generator writes the markdown report for one analysis.
type Generator struct {
	OutputDir string
}

// Generate writes the full report tree and returns the number of pages
// written.
func (g *Generator) Generate(a *analyzer.Analyzer) (int, error) {
	if err := os.MkdirAll(filepath.Join(g.OutputDir, "flows"), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	pages := 0
	write := func(rel, content string) error {
		if err := os.WriteFile(filepath.Join(g.OutputDir, rel), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		pages++
		return nil
	}

	if err := write("index.md", g.indexPage(a)); err != nil {
		return pages, err
	}
	if err := write("dependencies.md", g.dependenciesPage(a)); err != nil {
		return pages, err
	}
	if err := write("usage.md", g.usagePage(a)); err != nil {
		return pages, err
	}
	for _, flow := range a.Flows() {
		if err := write(filepath.Join("flows", Slug(flow.Name)+".md"), g.flowPage(flow)); err != nil {
			return pages, err
		}
	}
	return pages, nil
}

func (g *Generator) indexPage(a *analyzer.Analyzer) string {
	var b strings.Builder
	b.WriteString("# Contact flow analysis\n\n")
	fmt.Fprintf(&b, "%d flows analyzed.\n\n", len(a.Flows()))
	b.WriteString("| Flow | Type | Description |\n|---|---|---|\n")
	for _, flow := range a.Flows() {
		fmt.Fprintf(&b, "| [%s](flows/%s.md) | %s | %s |\n", flow.Name, Slug(flow.Name), flow.Type, flow.Description)
	}
	return b.String()
}

func (g *Generator) dependenciesPage(a *analyzer.Analyzer) string {
	deps := a.Dependencies()

	var b strings.Builder
	b.WriteString("# Flow dependencies\n\n")

	b.WriteString("## Deployment order\n\n")
	order, err := deps.DependencyOrder()
	if err != nil {
		b.WriteString("No deployment order exists: the dependency graph contains cycles (see below).\n\n")
	} else {
		for i, name := range order {
			fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Direct dependencies\n\n")
	for _, dep := range deps.Dependencies() {
		if len(dep.DependsOn) == 0 {
			fmt.Fprintf(&b, "- **%s** — no dependencies\n", dep.Name)
			continue
		}
		fmt.Fprintf(&b, "- **%s** → %s\n", dep.Name, strings.Join(dep.DependsOn, ", "))
	}
	b.WriteString("\n")

	if cycles := deps.Cycles(); len(cycles) > 0 {
		b.WriteString("## Cycles\n\n")
		for _, cycle := range cycles {
			fmt.Fprintf(&b, "- %s → %s\n", strings.Join(cycle, " → "), cycle[0])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Graph\n\n```dot\n")
	b.WriteString(dot.Dependencies(deps))
	b.WriteString("```\n")
	return b.String()
}

func (g *Generator) usagePage(a *analyzer.Analyzer) string {
	var b strings.Builder
	b.WriteString("# Resource usage\n\n")

	b.WriteString("## Contact attributes\n\n")
	attrs := a.Usage().Attributes()
	if len(attrs) == 0 {
		b.WriteString("None.\n\n")
	} else {
		b.WriteString("| Attribute | Used in | Updated in |\n|---|---|---|\n")
		for _, name := range sortedAttrKeys(attrs) {
			rec := attrs[name]
			fmt.Fprintf(&b, "| %s | %s | %s |\n", name,
				strings.Join(rec.UsedInFlow, ", "), strings.Join(rec.UpdatedInFlow, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Lambda functions\n\n")
	writeResourceTable(&b, a.Usage().Functions())

	b.WriteString("## Lex bots\n\n")
	writeResourceTable(&b, a.Usage().Bots())

	return b.String()
}

func (g *Generator) flowPage(flow *model.Flow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", flow.Name)
	fmt.Fprintf(&b, "Type: `%s`\n\n", flow.Type)
	if flow.Description != "" {
		b.WriteString(flow.Description + "\n\n")
	}

	if len(flow.ContactAttributes) > 0 {
		b.WriteString("## Contact attributes\n\n| Attribute | Used | Updated |\n|---|---|---|\n")
		for _, name := range sortedFlowAttrKeys(flow.ContactAttributes) {
			attr := flow.ContactAttributes[name]
			fmt.Fprintf(&b, "| %s | %v | %v |\n", name, attr.UsedInFlow, attr.UpdatedInFlow)
		}
		b.WriteString("\n")
	}
	if len(flow.LambdaFunctions) > 0 {
		b.WriteString("## Lambda functions\n\n")
		for _, name := range sortedResourceKeys(flow.LambdaFunctions) {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}
	if len(flow.LexBots) > 0 {
		b.WriteString("## Lex bots\n\n")
		for _, name := range sortedResourceKeys(flow.LexBots) {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	if flow.GraphDOT != "" {
		b.WriteString("## Control flow\n\n```dot\n")
		b.WriteString(flow.GraphDOT)
		b.WriteString("```\n")
	}
	return b.String()
}

func writeResourceTable(b *strings.Builder, resources map[string]*usage.ResourceFlows) {
	if len(resources) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	b.WriteString("| Resource | Used in |\n|---|---|\n")
	keys := make([]string, 0, len(resources))
	for k := range resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, name := range keys {
		fmt.Fprintf(b, "| %s | %s |\n", name, strings.Join(resources[name].UsedInFlow, ", "))
	}
	b.WriteString("\n")
}

func sortedAttrKeys(m map[string]*usage.AttributeFlows) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFlowAttrKeys(m map[string]*model.AttributeUsage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedResourceKeys(m map[string]*model.ResourceUsage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Slug converts a flow name into a safe file name.
func Slug(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		" ", "_",
		":", "_",
		"?", "_",
		"*", "_",
		"\"", "_",
	)
	return replacer.Replace(name)
}
