// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger that suits both CLI runs and the HTTP server,
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID (request id) stored by the rayid
// middleware from a Fiber context and attaches it to the log entry, so all
// logs for one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Preload complete")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
