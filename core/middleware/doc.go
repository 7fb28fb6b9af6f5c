// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - rayid: assigns every request a unique RayID, stored in the context
//     locals and echoed in the X-Ray-ID response header for tracing.
//   - auth: API key validation protecting every endpoint when a key is
//     configured.
package middleware
