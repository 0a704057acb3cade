package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy global; local non-empty fields replace.
	merged := *global

	if local.EnvFile != "" {
		merged.EnvFile = local.EnvFile
	}
	if local.PortKey != "" {
		merged.PortKey = local.PortKey
	}
	if local.SourceRoot != "" {
		merged.SourceRoot = local.SourceRoot
	}

	return &merged
}
