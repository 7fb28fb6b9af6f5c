// Package records exposes the record store over HTTP.
//
//	GET    /records/:kind/:id?subfolder=
//	GET    /cache/stats
//	DELETE /cache
//	POST   /cache/preload?subfolders=default,variant
//	PUT    /cache/size
package records
