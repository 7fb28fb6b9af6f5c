// Package loader provides the plugin-like feature loading system of the HTTP
// server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and LoadAll registers the
// routes of every enabled one. The records and catalog features are loaded
// this way by the serve command.
package loader
