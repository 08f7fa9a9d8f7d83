// Package merge parses import payloads, merges them into an existing
// collection by record id, and renders the collection for export.
//
// Merging is additive: a record already present locally always wins over an
// incoming record with the same id, and nothing is ever removed.
package merge
