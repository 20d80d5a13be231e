// Package sqlite is the default durable medium: one key-value table in a
// SQLite file, opened through the pure Go modernc.org/sqlite driver.
//
// The schema is versioned by the files in migrations. The database runs
// in WAL mode with a single writer connection, so a Store may be shared
// between goroutines. The persistent cache is layered on top by kvcache.
package sqlite
