package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables
	// authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// Metrics exposes prometheus metrics on /metrics.
	Metrics bool `mapstructure:"metrics" default:"true"`
	// PreloadOnStart warms the cache before the server starts listening.
	PreloadOnStart bool `mapstructure:"preload_on_start" default:"false"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
