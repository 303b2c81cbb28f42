package config

// Config is the top-level flowdoc configuration, corresponding to
// .flowdoc.yml.
type Config struct {
	// InputDir is the root directory searched for exported flow
	// documents.
	InputDir string `yaml:"input_dir" koanf:"input_dir"`
	// OutputDir receives the generated report and graph files.
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	// Include and Exclude are glob patterns applied to discovered
	// files, relative to InputDir.
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	// FlowReferencePaths and ModuleReferencePaths are the path-query
	// variants probed for cross-flow and cross-module references. The
	// export format is inconsistent about key casing, hence the
	// multiple flow variants.
	FlowReferencePaths   []string `yaml:"flow_reference_paths" koanf:"flow_reference_paths"`
	ModuleReferencePaths []string `yaml:"module_reference_paths" koanf:"module_reference_paths"`

	// TerminalTypes are the action types treated as flow exits.
	TerminalTypes []string `yaml:"terminal_types" koanf:"terminal_types"`

	// ErrorFilter restricts error-transition edges to the listed error
	// types (for example NoMatchingCondition). When empty, every error
	// transition becomes an edge, which is the default policy.
	ErrorFilter []string `yaml:"error_filter" koanf:"error_filter"`

	// ServePort is the local port used by the serve command.
	ServePort int `yaml:"serve_port" koanf:"serve_port"`
}
