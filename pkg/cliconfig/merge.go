package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Workspace != "" {
		target.Workspace = source.Workspace
		target.Sources["workspace"] = sourceType
	}
	if source.Format != "" {
		target.Format = source.Format
		target.Sources["format"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	// For booleans, `if source.X` cannot detect an explicit false. SetFields
	// (populated during file loading) records whether the key was present; a
	// programmatically built source falls back to merging true values only.
	if boolIsSet(source, "logJson") {
		target.LogJSON = source.LogJSON
		target.Sources["logJson"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "logJson":
		return cfg.LogJSON
	case "json":
		return cfg.JSON
	}
	return false
}
