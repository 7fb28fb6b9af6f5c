// Package datasync mirrors the parsed data repository between object storage
// and the local data root.
//
// Pull downloads every record file under the configured prefix with a bounded
// worker pool, replacing each local file atomically and skipping files that
// are already current. Push uploads the local data root. CheckLocal and
// CheckRemote report which kind and subfolder directories are missing.
//
// When exposed over HTTP (sync.enabled) the feature serves:
//
//	GET  /sync/structure[?fix=true]
//	POST /sync/pull
package datasync
