package datasync

// Config holds the settings of the data repository sync.
type Config struct {
	// Prefix is the object key prefix mirrored into the data root.
	Prefix string `mapstructure:"prefix" default:"parsed/"`
	// Workers bounds concurrent transfers.
	Workers int `mapstructure:"workers" default:"8"`
	// Enabled exposes the sync routes on the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"false"`
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 8
	}
	return c.Workers
}
