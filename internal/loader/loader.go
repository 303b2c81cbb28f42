// Package loader discovers and reads exported flow documents on disk.
// A document is a JSON file holding a single flow object, an array of
// flows, or an export wrapper with a ContactFlows list.
package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ziadkadry99/flowdoc/internal/model"
)

// Loader discovers flow documents under a root directory.
type Loader struct {
	RootDir string
	Include []string // Glob patterns — only matching files are loaded.
	Exclude []string // Glob patterns — matching files are skipped.
}

// Discover walks the root directory and returns the relative paths of
// every document passing the include/exclude filters, sorted for a
// stable processing order.
func (l *Loader) Discover() ([]string, error) {
	root, err := filepath.Abs(l.RootDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve root: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !MatchesInclude(relPath, l.Include) || MatchesExclude(relPath, l.Exclude) {
			return nil
		}
		paths = append(paths, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: traversal: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Load discovers and parses every matching document, returning all
// flows found in discovery order.
func (l *Loader) Load() ([]*model.Flow, error) {
	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}

	var flows []*model.Flow
	for _, rel := range paths {
		loaded, err := LoadFile(filepath.Join(l.RootDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		flows = append(flows, loaded...)
	}
	return flows, nil
}

// exportWrapper is the envelope some export tooling wraps flow lists in.
type exportWrapper struct {
	ContactFlows []*model.Flow `json:"ContactFlows"`
}

// LoadFile parses one document. It accepts a bare flow object, an array
// of flows, or a ContactFlows wrapper.
func LoadFile(path string) ([]*model.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var flows []*model.Flow
	if err := json.Unmarshal(data, &flows); err == nil {
		return validate(path, flows)
	}

	var wrapper exportWrapper
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.ContactFlows) > 0 {
		return validate(path, wrapper.ContactFlows)
	}

	var flow model.Flow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return validate(path, []*model.Flow{&flow})
}

// validate rejects documents missing the fields analysis cannot run
// without.
func validate(path string, flows []*model.Flow) ([]*model.Flow, error) {
	for _, f := range flows {
		if f.Name == "" {
			return nil, fmt.Errorf("%s: flow with id %q has no Name", path, f.ID)
		}
		if f.Content == "" {
			return nil, fmt.Errorf("%s: flow %q has no Content", path, f.Name)
		}
	}
	return flows, nil
}
