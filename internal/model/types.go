package model

import (
	"encoding/json"
	"fmt"
)

// FlowType identifies the kind of routing definition. Exports that omit
// the Type field are reusable modules.
type FlowType string

const (
	TypeContactFlow FlowType = "CONTACT_FLOW"
	TypeModule      FlowType = "CONTACT_FLOW_MODULE"
)

// Flow is one exported contact-routing definition as retrieved from an
// instance. The upper-case JSON keys match the export format. The
// lower-case derived fields are attached during analysis and are empty
// until the flow has been processed.
type Flow struct {
	ID          string   `json:"Id"`
	Arn         string   `json:"Arn,omitempty"`
	Name        string   `json:"Name"`
	Type        FlowType `json:"Type,omitempty"`
	Description string   `json:"Description,omitempty"`
	Content     string   `json:"Content"`

	ContactAttributes map[string]*AttributeUsage `json:"contactAttributes,omitempty"`
	LambdaFunctions   map[string]*ResourceUsage  `json:"lambdaFunctions,omitempty"`
	LexBots           map[string]*ResourceUsage  `json:"lexBots,omitempty"`
	GraphDOT          string                     `json:"graphAsDot,omitempty"`
}

// Key returns the name||type composite used to index processed flows.
// Flow names are unique within a session but may collide with module
// names, so the type is part of the key.
func (f *Flow) Key() string {
	return fmt.Sprintf("%s||%s", f.Name, f.Type)
}

// DecodeContent parses the encoded action graph carried in Content.
func (f *Flow) DecodeContent() (*Content, error) {
	var c Content
	if err := json.Unmarshal([]byte(f.Content), &c); err != nil {
		return nil, fmt.Errorf("flow %q: decoding content: %w", f.Name, err)
	}
	return &c, nil
}

// AttributeUsage is the per-flow view of one contact attribute.
type AttributeUsage struct {
	Name          string `json:"contactAttrName"`
	UsedInFlow    bool   `json:"usedInFlow"`
	UpdatedInFlow bool   `json:"updatedInFlow"`
}

// ResourceUsage is the per-flow presence record for an invoked function
// or bot.
type ResourceUsage struct {
	Name       string `json:"name"`
	UsedInFlow bool   `json:"usedInFlow"`
}

// Content is the decoded action graph of a single flow.
type Content struct {
	Version     string         `json:"Version,omitempty"`
	StartAction string         `json:"StartAction"`
	Metadata    map[string]any `json:"Metadata,omitempty"`
	Actions     []Action       `json:"Actions"`
}

// Action is a single step within a flow's content.
type Action struct {
	Identifier  string         `json:"Identifier"`
	Type        ActionType     `json:"Type"`
	Parameters  map[string]any `json:"Parameters,omitempty"`
	Transitions Transitions    `json:"Transitions"`
}

// Transitions holds the outgoing edges of an action: an unconditional
// next step plus typed error and condition branches.
type Transitions struct {
	NextAction string                `json:"NextAction,omitempty"`
	Errors     []ErrorTransition     `json:"Errors,omitempty"`
	Conditions []ConditionTransition `json:"Conditions,omitempty"`
}

// ErrorTransition routes a specific error type to a next action.
type ErrorTransition struct {
	NextAction string `json:"NextAction"`
	ErrorType  string `json:"ErrorType"`
}

// ConditionTransition routes to a next action when its condition holds.
type ConditionTransition struct {
	NextAction string    `json:"NextAction"`
	Condition  Condition `json:"Condition"`
}

// Condition is the operator/operand detail of a condition transition.
type Condition struct {
	Operator string   `json:"Operator"`
	Operands []string `json:"Operands"`
}
