// Package catalog provides the reverse indexes page generators consume:
// which creatures can have an ability, learn a move, or hold an item.
//
// Indexes are built from the canonical creatures of the record store, each
// list ordered by national number. A Catalog caches one build, shared by
// concurrent callers, until it expires or is invalidated (for example after
// the record cache is cleared).
//
// # Routes
//
//	GET  /catalog/abilities[/:id]
//	GET  /catalog/moves[/:id]
//	GET  /catalog/items[/:id]
//	POST /catalog/rebuild
package catalog
