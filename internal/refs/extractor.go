// Package refs extracts literal cross-flow and cross-module references
// from a flow's decoded content. References live in the action-metadata
// section, whose field names appear under several capitalizations in the
// export format; every known variant is probed and the matches merged in
// discovery order.
package refs

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Kind selects which reference flavor to extract.
type Kind int

const (
	// KindFlow matches references to other flows. Each match is a
	// sub-object and only its text field carries the target name.
	KindFlow Kind = iota
	// KindModule matches references to flow modules. The match is the
	// module name itself.
	KindModule
)

// Extractor runs compiled path queries against decoded flow content.
type Extractor struct {
	flowPaths   []*jmespath.JMESPath
	modulePaths []*jmespath.JMESPath
}

// NewExtractor compiles the path query variants for both reference
// kinds. Paths come from configuration, so compilation failures surface
// here rather than during extraction.
func NewExtractor(flowPaths, modulePaths []string) (*Extractor, error) {
	e := &Extractor{}
	for _, p := range flowPaths {
		compiled, err := jmespath.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling flow reference path %q: %w", p, err)
		}
		e.flowPaths = append(e.flowPaths, compiled)
	}
	for _, p := range modulePaths {
		compiled, err := jmespath.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling module reference path %q: %w", p, err)
		}
		e.modulePaths = append(e.modulePaths, compiled)
	}
	return e, nil
}

// Extract returns the literal target names of the given kind found in
// the decoded content, in discovery order. Duplicates are preserved;
// collapsing them is the dependency graph's job. The result is empty,
// never an error, when nothing matches.
func (e *Extractor) Extract(content map[string]any, kind Kind) []string {
	paths := e.modulePaths
	if kind == KindFlow {
		paths = e.flowPaths
	}

	var targets []string
	for _, path := range paths {
		result, err := path.Search(content)
		if err != nil {
			continue
		}
		matches, ok := result.([]any)
		if !ok {
			continue
		}
		for _, match := range matches {
			switch kind {
			case KindModule:
				if name, ok := match.(string); ok {
					targets = append(targets, name)
				}
			case KindFlow:
				sub, ok := match.(map[string]any)
				if !ok {
					continue
				}
				if name, ok := sub["text"].(string); ok {
					targets = append(targets, name)
				}
			}
		}
	}
	return targets
}
