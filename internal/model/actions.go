package model

// ActionType is the declared type of a single action entry.
type ActionType string

// Action types with specialized label or tooltip derivation, plus the
// terminal types that end a contact's path through a flow.
const (
	ActionTransferToQueue              ActionType = "TransferContactToQueue"
	ActionTransferToFlow               ActionType = "TransferToFlow"
	ActionCompare                      ActionType = "Compare"
	ActionInvokeFlowModule             ActionType = "InvokeFlowModule"
	ActionUpdateContactAttributes      ActionType = "UpdateContactAttributes"
	ActionUpdateContactData            ActionType = "UpdateContactData"
	ActionGetParticipantInput          ActionType = "GetParticipantInput"
	ActionMessageParticipant           ActionType = "MessageParticipant"
	ActionInvokeLambdaFunction         ActionType = "InvokeLambdaFunction"
	ActionConnectParticipantWithLexBot ActionType = "ConnectParticipantWithLexBot"
	ActionEndFlowExecution             ActionType = "EndFlowExecution"
	ActionDisconnectParticipant        ActionType = "DisconnectParticipant"
	ActionCreateCallbackContact        ActionType = "CreateCallbackContact"
)

// StringParam returns the named parameter as a string.
func (a *Action) StringParam(key string) (string, bool) {
	v, ok := a.Parameters[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MapParam returns the named parameter as a nested object.
func (a *Action) MapParam(key string) (map[string]any, bool) {
	v, ok := a.Parameters[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
