package config

// DefaultFlowReferencePaths are the path-query variants for hardcoded
// flow references. Both capitalizations occur in real exports.
var DefaultFlowReferencePaths = []string{
	"Metadata.ActionMetadata.*.contactFlow",
	"Metadata.ActionMetadata.*.ContactFlow",
}

// DefaultModuleReferencePaths are the path-query variants for module
// references.
var DefaultModuleReferencePaths = []string{
	"Metadata.ActionMetadata.*.contactFlowModuleName",
}

// DefaultTerminalTypes are the action types that end a contact's path
// through a flow.
var DefaultTerminalTypes = []string{
	"TransferContactToQueue",
	"EndFlowExecution",
	"DisconnectParticipant",
	"CreateCallbackContact",
}

// DefaultExcludes are glob patterns excluded from flow discovery by
// default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	".flowdoc/**",
}

// DefaultServePort is the port the serve command binds when none is
// configured.
const DefaultServePort = 8377

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:             ".",
		OutputDir:            "docs",
		Include:              []string{"**/*.json"},
		Exclude:              DefaultExcludes,
		FlowReferencePaths:   DefaultFlowReferencePaths,
		ModuleReferencePaths: DefaultModuleReferencePaths,
		TerminalTypes:        DefaultTerminalTypes,
		ServePort:            DefaultServePort,
	}
}
