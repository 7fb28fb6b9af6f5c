// Package models defines the four record kinds stored under the data root:
// creatures, moves, abilities and items.
//
// Every kind implements Record, which lets the store decode, validate and
// cache them behind one interface. Fields that differ between game versions
// use VersionMap, and opaque nested blobs such as sprites are kept verbatim as
// Document.
//
// # Decoding
//
// Records are decoded with goccy/go-json and then checked with Validate, which
// applies the struct's validate tags. A record that fails validation is
// treated as malformed by the store.
//
// # Change log
//
// Each record carries a ChangeLog. Edits are noted with ChangeLog.Record,
// which skips no-op edits and updates an entry for the same field and old
// value in place instead of appending a duplicate.
package models
