// Package cliconfig provides configuration types and loading for the postgirl CLI.
package cliconfig

// CLIConfig represents the complete configuration for the postgirl CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.postgirlrc.yaml in current directory)
// 4. Global config file (~/.config/postgirl/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Workspace is the workspace ID imports are staged in.
	Workspace string `yaml:"workspace" json:"workspace"`

	// Format is the default source format; empty means auto-detect.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Logging settings
	LogLevel string `yaml:"logLevel" json:"logLevel"`
	LogJSON  bool   `yaml:"logJson" json:"logJson"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in a loaded file,
	// so an explicit false can be told apart from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Defaults.
const (
	DefaultWorkspace = "default"
	DefaultLogLevel  = "warn"
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	return &CLIConfig{
		Workspace: DefaultWorkspace,
		LogLevel:  DefaultLogLevel,
		Sources: map[string]string{
			"workspace": SourceDefault,
			"logLevel":  SourceDefault,
		},
	}
}
