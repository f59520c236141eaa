// Package kv provides a key-value store over raw byte keys and values,
// both carried as byte views so data moves between callers, engines, and
// snapshots without copying.
//
// The package includes a BadgerDB-backed implementation for persistent
// use and an in-memory radix-tree implementation for tests and ephemeral
// workloads. Snapshots of any Store can be written to and restored from
// a stream; see Backup and Restore.
package kv

import (
	"context"
	"errors"
	"iter"

	"github.com/tokahuke/jammdb/pkg/byteview"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("kv: not found")

	// ErrEmptyKey is returned when an operation is given an empty key.
	// Empty values are legal; empty keys are not.
	ErrEmptyKey = errors.New("kv: empty key")
)

// Entry is a key-value pair returned by List and accepted by BatchSet.
type Entry struct {
	Key   byteview.ByteView
	Value byteview.ByteView
}

// Store is the interface for a byte-keyed key-value store.
//
// Keys must be non-empty; operations given an empty key return
// ErrEmptyKey. An empty value is legal and distinct from an absent key.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if absent.
	Get(ctx context.Context, key byteview.ByteView) (byteview.ByteView, error)

	// Set stores a key-value pair. Overwrites any existing value.
	Set(ctx context.Context, key, value byteview.ByteView) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key byteview.ByteView) error

	// List iterates over all entries whose key starts with the given
	// prefix, in lexicographic key order. An empty prefix lists every
	// entry.
	List(ctx context.Context, prefix byteview.ByteView) iter.Seq2[Entry, error]

	// BatchSet atomically stores multiple key-value pairs.
	BatchSet(ctx context.Context, entries []Entry) error

	// BatchDelete atomically removes multiple keys.
	BatchDelete(ctx context.Context, keys []byteview.ByteView) error

	// Close releases any resources held by the store.
	Close() error
}

// checkKey rejects empty keys before they reach an engine.
func checkKey(key byteview.ByteView) error {
	if key.Size() == 0 {
		return ErrEmptyKey
	}
	return nil
}
