package config

import "context"

// resolverKey is the context key for ConfigResolver
type resolverKey struct{}

// ConfigResolver provides lazy per-worktree config resolution with caching.
// Each worktree carries its own checkout of .wtp.toml, so the effective
// config can differ between sibling worktrees of the same repo.
type ConfigResolver struct {
	global *Config
	cache  map[string]*Config // worktree root -> merged config
}

// NewResolver creates a new ConfigResolver backed by the given global config.
func NewResolver(global *Config) *ConfigResolver {
	return &ConfigResolver{
		global: global,
		cache:  make(map[string]*Config),
	}
}

// ConfigForWorktree returns the effective config for a worktree, merging any
// .wtp.toml found at its root with the global config. Results are cached per path.
func (r *ConfigResolver) ConfigForWorktree(root string) (*Config, error) {
	if cached, ok := r.cache[root]; ok {
		return cached, nil
	}

	local, err := LoadLocal(root)
	if err != nil {
		return nil, err
	}

	merged := MergeLocal(r.global, local)
	r.cache[root] = merged
	return merged, nil
}

// Global returns the global config (without any local overrides).
func (r *ConfigResolver) Global() *Config {
	return r.global
}

// WithResolver returns a new context with the ConfigResolver stored in it.
func WithResolver(ctx context.Context, r *ConfigResolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the ConfigResolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *ConfigResolver {
	if r, ok := ctx.Value(resolverKey{}).(*ConfigResolver); ok {
		return r
	}
	return nil
}
