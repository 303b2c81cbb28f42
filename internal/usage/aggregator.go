// Package usage tracks which flows read or write contact attributes and
// which flows invoke a given lambda function or lex bot. Two views are
// kept for every resource: a global resource→flows listing and a
// per-flow set of boolean flags attached to the Flow itself. Both views
// are mutated by the same call, so they cannot drift apart.
package usage

import (
	"strings"

	"github.com/ziadkadry99/flowdoc/internal/model"
)

// Kind distinguishes reading a contact attribute from writing it.
type Kind string

const (
	Used    Kind = "used"
	Updated Kind = "updated"
)

// attributePrefix is the addressing prefix stripped from attribute
// references so that addressed and bare forms collapse to one entry.
const attributePrefix = "$.Attributes."

// AttributeFlows is the global usage record for one contact attribute.
type AttributeFlows struct {
	UsedInFlow    []string `json:"usedInFlow"`
	UpdatedInFlow []string `json:"updatedInFlow"`
}

// ResourceFlows is the global usage record for a function or bot.
type ResourceFlows struct {
	UsedInFlow []string `json:"usedInFlow"`
}

// Aggregator accumulates usage records across all processed flows.
type Aggregator struct {
	attributes map[string]*AttributeFlows
	functions  map[string]*ResourceFlows
	bots       map[string]*ResourceFlows
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		attributes: make(map[string]*AttributeFlows),
		functions:  make(map[string]*ResourceFlows),
		bots:       make(map[string]*ResourceFlows),
	}
}

// RecordAttribute notes that flow uses or updates the named contact
// attribute. The flow name is appended to the global view at most once
// per kind; the per-flow flags only ever go from false to true.
func (a *Aggregator) RecordAttribute(name string, flow *model.Flow, kind Kind) {
	name = strings.TrimPrefix(name, attributePrefix)

	global, ok := a.attributes[name]
	if !ok {
		global = &AttributeFlows{}
		a.attributes[name] = global
	}
	switch kind {
	case Used:
		global.UsedInFlow = appendUnique(global.UsedInFlow, flow.Name)
	case Updated:
		global.UpdatedInFlow = appendUnique(global.UpdatedInFlow, flow.Name)
	}

	if flow.ContactAttributes == nil {
		flow.ContactAttributes = make(map[string]*model.AttributeUsage)
	}
	attr, ok := flow.ContactAttributes[name]
	if !ok {
		attr = &model.AttributeUsage{Name: name}
		flow.ContactAttributes[name] = attr
	}
	switch kind {
	case Used:
		attr.UsedInFlow = true
	case Updated:
		attr.UpdatedInFlow = true
	}
}

// RecordFunction notes that flow invokes the lambda function with the
// given ARN.
func (a *Aggregator) RecordFunction(arn string, flow *model.Flow) {
	global, ok := a.functions[arn]
	if !ok {
		global = &ResourceFlows{}
		a.functions[arn] = global
	}
	global.UsedInFlow = appendUnique(global.UsedInFlow, flow.Name)

	if flow.LambdaFunctions == nil {
		flow.LambdaFunctions = make(map[string]*model.ResourceUsage)
	}
	if _, ok := flow.LambdaFunctions[arn]; !ok {
		flow.LambdaFunctions[arn] = &model.ResourceUsage{Name: arn, UsedInFlow: true}
	}
}

// RecordBot notes that flow connects the participant to the bot with the
// given region:name:alias composite key.
func (a *Aggregator) RecordBot(key string, flow *model.Flow) {
	global, ok := a.bots[key]
	if !ok {
		global = &ResourceFlows{}
		a.bots[key] = global
	}
	global.UsedInFlow = appendUnique(global.UsedInFlow, flow.Name)

	if flow.LexBots == nil {
		flow.LexBots = make(map[string]*model.ResourceUsage)
	}
	if _, ok := flow.LexBots[key]; !ok {
		flow.LexBots[key] = &model.ResourceUsage{Name: key, UsedInFlow: true}
	}
}

// Attributes returns the global attribute usage view.
func (a *Aggregator) Attributes() map[string]*AttributeFlows {
	return a.attributes
}

// Functions returns the global lambda function usage view.
func (a *Aggregator) Functions() map[string]*ResourceFlows {
	return a.functions
}

// Bots returns the global lex bot usage view.
func (a *Aggregator) Bots() map[string]*ResourceFlows {
	return a.bots
}

// appendUnique appends name unless it is already present.
func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
