package kv

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/tokahuke/jammdb/pkg/buffer"
	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/trie"
)

// Memory is an in-memory Store backed by a radix tree. It is safe for
// concurrent use. Keys live in the tree in lexicographic order, so List
// needs no sorting pass.
//
// Values are kept in shared buffers: Set copies the value once, and Get
// returns a view of the stored buffer without copying.
type Memory struct {
	mu   sync.RWMutex
	tree *trie.Trie[buffer.Shared]
}

// NewMemory creates a new empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{tree: trie.New[buffer.Shared]()}
}

func (m *Memory) Get(_ context.Context, key byteview.ByteView) (byteview.ByteView, error) {
	if err := checkKey(key); err != nil {
		return byteview.ByteView{}, err
	}
	m.mu.RLock()
	sh, ok := m.tree.Get(key.Bytes())
	m.mu.RUnlock()
	if !ok {
		return byteview.ByteView{}, ErrNotFound
	}
	return byteview.From(sh), nil
}

func (m *Memory) Set(_ context.Context, key, value byteview.ByteView) error {
	if err := checkKey(key); err != nil {
		return err
	}
	sh := buffer.NewShared(value.Bytes())
	m.mu.Lock()
	m.tree.Put(key.Bytes(), sh)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key byteview.ByteView) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.tree.Delete(key.Bytes())
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(_ context.Context, prefix byteview.ByteView) iter.Seq2[Entry, error] {
	// Snapshot matching entries under the read lock, then yield outside
	// it so a consumer cannot stall writers. Values are shared buffers,
	// so the snapshot copies key bytes only.
	m.mu.RLock()
	var entries []Entry
	m.tree.Ascend(prefix.Bytes(), func(key []byte, sh buffer.Shared) bool {
		entries = append(entries, Entry{
			Key:   byteview.Own(slices.Clone(key)),
			Value: byteview.From(sh),
		})
		return true
	})
	m.mu.RUnlock()

	return func(yield func(Entry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (m *Memory) BatchSet(_ context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := checkKey(e.Key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.tree.Put(e.Key.Bytes(), buffer.NewShared(e.Value.Bytes()))
	}
	return nil
}

func (m *Memory) BatchDelete(_ context.Context, keys []byteview.ByteView) error {
	for _, key := range keys {
		if err := checkKey(key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		m.tree.Delete(key.Bytes())
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
