// Package server holds the HTTP server configuration.
//
// The serve command owns the fiber application; this package only defines the
// settings it reads: listen port, API key, whether to expose metrics and
// whether to warm the record cache before accepting requests.
package server
