package analyzer

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ziadkadry99/flowdoc/internal/config"
	"github.com/ziadkadry99/flowdoc/internal/model"
)

// content builds a Content JSON string for a Flow from its parts.
func content(t *testing.T, startAction string, actions []model.Action, metadata map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"Version":     "2019-10-30",
		"StartAction": startAction,
		"Metadata":    map[string]any{"ActionMetadata": metadata},
		"Actions":     actions,
	})
	if err != nil {
		t.Fatalf("building test content: %v", err)
	}
	return string(raw)
}

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(config.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func TestNew_BadReferencePath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FlowReferencePaths = []string{"Metadata.["}
	if _, err := New(cfg); err == nil {
		t.Error("expected an error for a bad reference path")
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	a := newAnalyzer(t)

	main := &model.Flow{
		ID:   "flow-main",
		Name: "Main",
		Type: model.TypeContactFlow,
		Content: content(t, "a1", []model.Action{
			{
				Identifier:  "a1",
				Type:        model.ActionInvokeFlowModule,
				Parameters:  map[string]any{"FlowModuleId": "mod-greeting"},
				Transitions: model.Transitions{NextAction: "a2"},
			},
			{
				Identifier: "a2",
				Type:       model.ActionTransferToFlow,
				Parameters: map[string]any{"ContactFlowId": "arn:aws:connect:us-east-1:123:instance/i-1/contact-flow/Billing"},
			},
		}, map[string]any{
			"a1": map[string]any{"contactFlowModuleName": "Greeting"},
			"a2": map[string]any{"contactFlow": map[string]any{"text": "Billing", "id": "flow-billing"}},
		}),
	}
	greeting := &model.Flow{
		ID:   "mod-greeting",
		Name: "Greeting",
		Content: content(t, "g1", []model.Action{
			{Identifier: "g1", Type: model.ActionMessageParticipant, Parameters: map[string]any{"Text": "Hello"}},
		}, map[string]any{}),
	}
	billing := &model.Flow{
		ID:   "flow-billing",
		Name: "Billing",
		Type: model.TypeContactFlow,
		Content: content(t, "b1", []model.Action{
			{
				Identifier: "b1",
				Type:       model.ActionCompare,
				Parameters: map[string]any{"ComparisonValue": "$.Attributes.customerTier"},
				Transitions: model.Transitions{
					Conditions: []model.ConditionTransition{
						{NextAction: "b2", Condition: model.Condition{Operator: "Equals", Operands: []string{"gold"}}},
					},
				},
			},
			{Identifier: "b2", Type: model.ActionDisconnectParticipant},
		}, map[string]any{}),
	}

	for _, flow := range []*model.Flow{main, greeting, billing} {
		a.Register(flow)
	}
	for _, flow := range []*model.Flow{main, greeting, billing} {
		if err := a.Process(flow); err != nil {
			t.Fatalf("Process(%s) failed: %v", flow.Name, err)
		}
	}

	// Module references are extracted before flow references.
	if got := a.Dependencies().DependenciesOf("Main"); !reflect.DeepEqual(got, []string{"Greeting", "Billing"}) {
		t.Errorf("DependenciesOf(Main) = %v, want [Greeting Billing]", got)
	}

	// Every dependency target appears before its referencing flow.
	order, err := a.Dependencies().DependencyOrder()
	if err != nil {
		t.Fatalf("DependencyOrder failed: %v", err)
	}
	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	if pos["Greeting"] > pos["Main"] || pos["Billing"] > pos["Main"] {
		t.Errorf("order = %v, want Greeting and Billing before Main", order)
	}

	// The module invoke label resolves through the pre-registered id.
	g := a.ActionGraph("Main")
	if g == nil {
		t.Fatal("no action graph recorded for Main")
	}
	if got := g.Node("a1").Label; got != string(model.ActionInvokeFlowModule)+"\nGreeting" {
		t.Errorf("module invoke label = %q", got)
	}

	attr := a.Usage().Attributes()["customerTier"]
	if attr == nil || !reflect.DeepEqual(attr.UsedInFlow, []string{"Billing"}) {
		t.Errorf("customerTier usage = %+v", attr)
	}
	if billingAttr := billing.ContactAttributes["customerTier"]; billingAttr == nil || !billingAttr.UsedInFlow {
		t.Errorf("per-flow attribute record = %+v", billingAttr)
	}

	if !strings.HasPrefix(main.GraphDOT, `digraph "Main" {`) {
		t.Errorf("GraphDOT not attached:\n%s", main.GraphDOT)
	}

	if got := len(a.Flows()); got != 3 {
		t.Errorf("Flows() length = %d, want 3", got)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	a := newAnalyzer(t)
	flow := &model.Flow{
		ID:   "flow-main",
		Name: "Main",
		Type: model.TypeContactFlow,
		Content: content(t, "a1", []model.Action{
			{Identifier: "a1", Type: model.ActionDisconnectParticipant},
		}, map[string]any{
			"a1": map[string]any{"contactFlow": map[string]any{"text": "Billing"}},
		}),
	}

	for i := 0; i < 3; i++ {
		if err := a.Process(flow); err != nil {
			t.Fatalf("Process run %d failed: %v", i, err)
		}
	}

	if got := a.Dependencies().DependenciesOf("Main"); !reflect.DeepEqual(got, []string{"Billing"}) {
		t.Errorf("DependenciesOf(Main) = %v, want [Billing]", got)
	}
	if got := len(a.Flows()); got != 1 {
		t.Errorf("Flows() length = %d, want 1", got)
	}
}

func TestProcess_TypelessFlowBecomesModule(t *testing.T) {
	a := newAnalyzer(t)
	flow := &model.Flow{
		ID:   "mod-1",
		Name: "Greeting",
		Content: content(t, "a1", []model.Action{
			{Identifier: "a1", Type: model.ActionDisconnectParticipant},
		}, map[string]any{}),
	}

	if err := a.Process(flow); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if flow.Type != model.TypeModule {
		t.Errorf("Type = %q, want %q", flow.Type, model.TypeModule)
	}
}

func TestProcess_BadContent(t *testing.T) {
	a := newAnalyzer(t)
	flow := &model.Flow{ID: "f1", Name: "Broken", Content: "{not json"}

	if err := a.Process(flow); err == nil {
		t.Error("expected a decode error")
	}
	if got := len(a.Flows()); got != 0 {
		t.Errorf("failed flow was recorded: %d flows", got)
	}
}

func TestProcess_CycleDetectedAcrossFlows(t *testing.T) {
	a := newAnalyzer(t)
	flows := []*model.Flow{
		{
			ID: "f-a", Name: "A", Type: model.TypeContactFlow,
			Content: content(t, "a1", []model.Action{
				{Identifier: "a1", Type: model.ActionDisconnectParticipant},
			}, map[string]any{
				"a1": map[string]any{"contactFlow": map[string]any{"text": "B"}},
			}),
		},
		{
			ID: "f-b", Name: "B", Type: model.TypeContactFlow,
			Content: content(t, "b1", []model.Action{
				{Identifier: "b1", Type: model.ActionDisconnectParticipant},
			}, map[string]any{
				"b1": map[string]any{"contactFlow": map[string]any{"text": "A"}},
			}),
		},
	}
	for _, flow := range flows {
		if err := a.Process(flow); err != nil {
			t.Fatalf("Process(%s) failed: %v", flow.Name, err)
		}
	}

	deps := a.Dependencies()
	if !deps.HasCycles() {
		t.Fatal("cycle not detected")
	}
	if _, err := deps.DependencyOrder(); err == nil {
		t.Error("expected DependencyOrder to fail on a cyclic graph")
	}
}
