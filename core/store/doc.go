// Package store loads game records from the data root and caches them.
//
// Records live at <dir>/<kind>/<id>.json, with creatures further split into
// subfolders (default, transformation, variant, cosmetic). A single Store
// owns one LRU cache shared by all four record kinds and is meant to live for
// a whole generation run.
//
// # Loading
//
// Load normalizes the id, checks the cache under a read lock and, on a miss,
// reads and decodes the file outside any lock. Concurrent misses for the same
// key collapse into one read. The result is inserted under the write lock
// unless another caller already did so, in which case the cached record is
// returned. When <id>.json is missing, the first <id>-*.json in name order is
// used instead.
//
// Missing or malformed files never surface as errors from Load; they are
// logged and reported as not found.
//
// # Saving
//
// Save renders the record as indented JSON with sorted keys, writes it through
// a temporary file that is renamed into place, and then updates the cache so
// later loads see the new value without touching disk.
//
// # Bulk operations
//
// Preload warms the cache for whole creature subfolders with a bounded worker
// pool. A preloaded record never replaces one that was cached or saved while
// the preload was reading. IterateCreatures and IterateCanonical walk
// subfolders lazily, keeping default forms and skipping duplicates. All and
// its typed variants enumerate a whole kind through the cache.
//
// # Editing
//
// SetField replaces one field of a record, notes the edit in the record's
// change log and saves it.
package store
