// Package memory provides in-memory implementations of the driven storage
// ports. They back --ephemeral sessions and keep service tests off disk.
package memory
