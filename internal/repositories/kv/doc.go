// Package kv is the key-value port the editor state is persisted through,
// with three drivers:
//
//   - SQLiteRepository: a single log_fields table in a local SQLite file,
//     created by goose migrations (see Open).
//   - DiskvRepository: one file per key in a directory, backed by diskv.
//   - MemoryRepository: a map, for tests and throwaway sessions.
//
// Contract shared by all drivers:
//
//   - SetAll overwrites every key in the batch and leaves other keys alone;
//     the SQLite driver does so in one transaction.
//   - List returns every stored key, including ones holding empty values.
package kv
