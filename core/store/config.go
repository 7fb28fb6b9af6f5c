package store

// DefaultMaxCacheSize bounds the unified cache when no size is configured.
const DefaultMaxCacheSize = 9999

// Config holds configuration for the record store.
type Config struct {
	// Dir is the data root holding one directory per record kind.
	Dir string `mapstructure:"dir" default:"data/pokedb/parsed"`
	// MaxCacheSize bounds the number of cached records across all kinds.
	MaxCacheSize int `mapstructure:"max_cache_size" default:"9999"`
	// PreloadWorkers overrides the preload worker count. Zero picks
	// min(32, 4*NumCPU).
	PreloadWorkers int `mapstructure:"preload_workers" default:"0"`
}
