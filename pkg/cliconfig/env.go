package cliconfig

import (
	"os"
)

// Environment variable names
const (
	EnvWorkspace = "POSTGIRL_WORKSPACE"
	EnvFormat    = "POSTGIRL_FORMAT"
	EnvLogLevel  = "POSTGIRL_LOG_LEVEL"
	EnvLogJSON   = "POSTGIRL_LOG_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvWorkspace); v != "" {
		cfg.Workspace = v
		cfg.Sources["workspace"] = SourceEnv
	}

	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
		cfg.Sources["format"] = SourceEnv
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogJSON); v != "" {
		cfg.LogJSON = v == "true" || v == "1" || v == "yes"
		cfg.Sources["logJson"] = SourceEnv
	}
}
