package actiongraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/flowdoc/internal/model"
	"github.com/ziadkadry99/flowdoc/internal/usage"
)

// dynamicTarget is the placeholder for a flow transfer whose target is
// computed at contact time and cannot be resolved statically.
const dynamicTarget = "Dynamic (TBD)"

// describe derives the display label and optional tooltip for one
// action, recording any resource usage it implies. Every action type not
// listed here gets its type name as the label and no tooltip.
func (b *Builder) describe(flow *model.Flow, action *model.Action) (label, tooltip string, err error) {
	label = string(action.Type)

	switch action.Type {
	case model.ActionTransferToQueue:
		label = fmt.Sprintf("%s\n%s", action.Type, action.Identifier)

	case model.ActionTransferToFlow:
		// ContactFlowId is the target ARN when hardcoded; only its
		// trailing path segment is shown.
		target := dynamicTarget
		if arn, ok := action.StringParam("ContactFlowId"); ok {
			parts := strings.Split(arn, "/")
			target = parts[len(parts)-1]
		}
		label = fmt.Sprintf("%s\n%s", action.Type, target)

	case model.ActionCompare:
		value, ok := action.StringParam("ComparisonValue")
		if !ok {
			return "", "", b.malformed(flow, action, "ComparisonValue")
		}
		label = fmt.Sprintf("%s\n%s", action.Type, value)
		b.usage.RecordAttribute(value, flow, usage.Used)

	case model.ActionInvokeFlowModule:
		id, ok := action.StringParam("FlowModuleId")
		if !ok {
			return "", "", b.malformed(flow, action, "FlowModuleId")
		}
		label = fmt.Sprintf("%s\n%s", action.Type, b.resolver.Resolve(id))

	case model.ActionUpdateContactAttributes:
		attrs, ok := action.MapParam("Attributes")
		if !ok {
			return "", "", b.malformed(flow, action, "Attributes")
		}
		var sb strings.Builder
		for _, key := range sortedKeys(attrs) {
			fmt.Fprintf(&sb, "%s = %v", key, attrs[key])
			b.usage.RecordAttribute(key, flow, usage.Updated)
		}
		tooltip = sb.String()

	case model.ActionUpdateContactData:
		// System variables set through the update-attributes block
		// arrive as bare parameter keys; namespace them.
		var sb strings.Builder
		for _, key := range sortedKeys(action.Parameters) {
			name := "System." + key
			fmt.Fprintf(&sb, "%s = %v", name, action.Parameters[key])
			b.usage.RecordAttribute(name, flow, usage.Updated)
		}
		tooltip = sb.String()

	case model.ActionGetParticipantInput, model.ActionMessageParticipant:
		if ssml, ok := action.StringParam("SSML"); ok {
			tooltip = ssml
		}
		if text, ok := action.StringParam("Text"); ok {
			tooltip = text
		}

	case model.ActionInvokeLambdaFunction:
		arn, ok := action.StringParam("LambdaFunctionARN")
		if !ok {
			return "", "", b.malformed(flow, action, "LambdaFunctionARN")
		}
		timeout, ok := action.Parameters["InvocationTimeLimitSeconds"]
		if !ok {
			return "", "", b.malformed(flow, action, "InvocationTimeLimitSeconds")
		}
		label = fmt.Sprintf("%s\n%s", action.Type, arn)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s Timeout_ %v", arn, timeout)
		if attrs, ok := action.MapParam("LambdaInvocationAttributes"); ok {
			sb.WriteString("\n{")
			for _, key := range sortedKeys(attrs) {
				fmt.Fprintf(&sb, "%s=%v\n", key, attrs[key])
			}
			sb.WriteString("}")
		}
		tooltip = sb.String()
		b.usage.RecordFunction(arn, flow)

	case model.ActionConnectParticipantWithLexBot:
		// Only statically configured bots are resolvable; dynamic
		// configuration produces no usage record.
		bot, ok := action.MapParam("LexBot")
		if !ok {
			break
		}
		region, okRegion := stringField(bot, "Region")
		name, okName := stringField(bot, "Name")
		alias, okAlias := stringField(bot, "Alias")
		if !okRegion || !okName || !okAlias {
			return "", "", b.malformed(flow, action, "LexBot")
		}
		composite := fmt.Sprintf("%s:%s:%s", region, name, alias)
		label = fmt.Sprintf("%s\n%s", action.Type, composite)
		tooltip = composite
		b.usage.RecordBot(composite, flow)
	}

	return label, tooltip, nil
}

func (b *Builder) malformed(flow *model.Flow, action *model.Action, field string) error {
	return &MalformedActionError{
		Flow:   flow.Name,
		Action: action.Identifier,
		Type:   action.Type,
		Field:  field,
	}
}

// sortedKeys returns the map's keys in sorted order so tooltips and
// usage records come out the same on every run.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}
