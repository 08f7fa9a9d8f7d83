// Package storage provides the local key-value storage PromptKeeper persists
// into, the Go counterpart of the browser storage the tool was designed for.
//
// # Overview
//
// KV is a flat map from string keys to byte values. Two implementations:
//
//   - SQLiteKV: durable, one row per key in table kv (see migrations/)
//   - MemoryKV: process-local, optionally limited by a byte quota so that
//     quota-exceeded write failures can be exercised
//
// Get returns (nil, nil) for an absent key. SetMany writes all pairs
// atomically.
//
// Typical Usage
//
//	db, _ := storage.InitDatabase(ctx, "promptkeeper.db")
//	kv := storage.NewSQLiteKV(db)
//	_ = kv.Set(ctx, "promptkeeper.prompts", blob)
//	blob, _ = kv.Get(ctx, "promptkeeper.prompts")
package storage
