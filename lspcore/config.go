package lspcore

// Option keys recognized in the LSP initialize request's
// initializationOptions payload.
const (
	OptionDiscoverRootsPattern = "openapi-lsp.discoverRoots.pattern"
	OptionDiscoverRootsIgnore  = "openapi-lsp.discoverRoots.ignore"
	OptionDebugCache           = "openapi-lsp.debug.cache"
)

// Config carries the workspace-level options the analysis core recognizes.
type Config struct {
	// DiscoverRootsPattern is the glob used to discover OpenAPI root
	// documents under the workspace folder.
	DiscoverRootsPattern string
	// DiscoverRootsIgnore excludes paths from discovery.
	DiscoverRootsIgnore string
	// DebugCache enables debug-level logging of cache hits, misses, and
	// invalidations.
	DebugCache bool
}

// DefaultConfig returns the documented option defaults.
func DefaultConfig() Config {
	return Config{
		DiscoverRootsPattern: "**/*",
		DiscoverRootsIgnore:  "{**/node_modules/**,**/.git/**,**/.hg/**}",
	}
}

// ConfigFromInitializationOptions overlays any recognized options from an
// initialize request onto the defaults. Unknown keys and mistyped values are
// ignored rather than rejected, since clients send arbitrary extra settings.
func ConfigFromInitializationOptions(opts map[string]any) Config {
	cfg := DefaultConfig()
	if opts == nil {
		return cfg
	}
	if v, ok := opts[OptionDiscoverRootsPattern].(string); ok && v != "" {
		cfg.DiscoverRootsPattern = v
	}
	if v, ok := opts[OptionDiscoverRootsIgnore].(string); ok {
		cfg.DiscoverRootsIgnore = v
	}
	if v, ok := opts[OptionDebugCache].(bool); ok {
		cfg.DebugCache = v
	}
	return cfg
}
