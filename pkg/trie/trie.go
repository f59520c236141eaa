// Package trie implements a compressed radix tree keyed by raw bytes.
//
// Keys are arbitrary byte strings ordered lexicographically. Nodes carry
// compressed prefixes, so a run of keys sharing a long prefix costs one
// node rather than one node per byte. Lookups and updates run in time
// proportional to the key length. Ascend visits keys in lexicographic
// order and supports prefix scans.
//
// The tree is not safe for concurrent use; callers provide their own
// locking.
package trie

import (
	"bytes"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Trie is a radix tree mapping byte-string keys to values of type T.
// The zero value is an empty tree ready to use.
type Trie[T any] struct {
	root *node[T]
	size int
}

type node[T any] struct {
	prefix   []byte
	children []*node[T] // sorted by first prefix byte, prefixes never empty
	value    T
	set      bool
}

// New creates an empty Trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Put stores value under key, replacing any previous value. The key is
// copied; the caller may reuse the slice afterwards.
func (t *Trie[T]) Put(key []byte, value T) {
	if t.root == nil {
		t.root = &node[T]{}
	}
	if t.root.put(slices.Clone(key), value) {
		t.size++
	}
}

// put inserts key below n and reports whether a new key was added
// (false means an existing value was replaced).
func (n *node[T]) put(key []byte, value T) bool {
	cp := commonLen(n.prefix, key)
	if cp < len(n.prefix) {
		n.split(cp)
		if cp == len(key) {
			n.value = value
			n.set = true
			return true
		}
		n.insertChild(&node[T]{prefix: key[cp:], value: value, set: true})
		return true
	}
	if cp == len(key) {
		added := !n.set
		n.value = value
		n.set = true
		return added
	}
	rest := key[cp:]
	if ch := n.child(rest[0]); ch != nil {
		return ch.put(rest, value)
	}
	n.insertChild(&node[T]{prefix: rest, value: value, set: true})
	return true
}

// split pushes the tail of n's prefix down into a new child, leaving n
// with the first cp bytes and no value.
func (n *node[T]) split(cp int) {
	child := &node[T]{
		prefix:   n.prefix[cp:],
		children: n.children,
		value:    n.value,
		set:      n.set,
	}
	var zero T
	n.prefix = n.prefix[:cp]
	n.children = []*node[T]{child}
	n.value = zero
	n.set = false
}

// Get returns the value stored under key.
func (t *Trie[T]) Get(key []byte) (T, bool) {
	var zero T
	n := t.root
	for n != nil {
		if !bytes.HasPrefix(key, n.prefix) {
			return zero, false
		}
		key = key[len(n.prefix):]
		if len(key) == 0 {
			if n.set {
				return n.value, true
			}
			return zero, false
		}
		n = n.child(key[0])
	}
	return zero, false
}

// Delete removes the value stored under key and reports whether it was
// present.
func (t *Trie[T]) Delete(key []byte) bool {
	if t.root == nil || !t.root.del(key) {
		return false
	}
	t.size--
	return true
}

func (n *node[T]) del(key []byte) bool {
	if !bytes.HasPrefix(key, n.prefix) {
		return false
	}
	rest := key[len(n.prefix):]
	if len(rest) == 0 {
		if !n.set {
			return false
		}
		var zero T
		n.value = zero
		n.set = false
		return true
	}
	i, ok := n.search(rest[0])
	if !ok {
		return false
	}
	ch := n.children[i]
	if !ch.del(rest) {
		return false
	}
	// Prune empty leaves; merge pass-through nodes back into their
	// single child so paths stay compressed.
	if !ch.set {
		switch len(ch.children) {
		case 0:
			n.children = slices.Delete(n.children, i, i+1)
		case 1:
			g := ch.children[0]
			merged := make([]byte, 0, len(ch.prefix)+len(g.prefix))
			merged = append(append(merged, ch.prefix...), g.prefix...)
			g.prefix = merged
			n.children[i] = g
		}
	}
	return true
}

// Len returns the number of keys stored in the tree.
func (t *Trie[T]) Len() int {
	return t.size
}

// Ascend calls fn for every key that starts with prefix, in lexicographic
// order, until fn returns false. A nil or empty prefix visits every key.
//
// The key slice passed to fn is reused between calls; fn must copy it to
// retain it.
func (t *Trie[T]) Ascend(prefix []byte, fn func(key []byte, value T) bool) {
	if t.root == nil {
		return
	}
	t.root.ascend(nil, prefix, fn)
}

func (n *node[T]) ascend(acc, want []byte, fn func([]byte, T) bool) bool {
	if len(want) > 0 {
		m := min(len(n.prefix), len(want))
		if !bytes.Equal(n.prefix[:m], want[:m]) {
			return true
		}
		if len(want) > len(n.prefix) {
			rest := want[len(n.prefix):]
			ch := n.child(rest[0])
			if ch == nil {
				return true
			}
			return ch.ascend(append(acc, n.prefix...), rest, fn)
		}
	}
	return n.walk(acc, fn)
}

// walk visits n and its subtree in order. A node's own key is a proper
// prefix of every descendant key, so it is emitted first.
func (n *node[T]) walk(acc []byte, fn func([]byte, T) bool) bool {
	key := append(acc, n.prefix...)
	if n.set {
		if !fn(key, n.value) {
			return false
		}
	}
	for _, ch := range n.children {
		if !ch.walk(key, fn) {
			return false
		}
	}
	return true
}

// Min returns the lexicographically smallest key and its value.
func (t *Trie[T]) Min() ([]byte, T, bool) {
	var zero T
	if t.root == nil {
		return nil, zero, false
	}
	return t.root.min(nil)
}

func (n *node[T]) min(acc []byte) ([]byte, T, bool) {
	key := append(acc, n.prefix...)
	if n.set {
		return key, n.value, true
	}
	for _, ch := range n.children {
		if k, v, ok := ch.min(key); ok {
			return k, v, true
		}
	}
	var zero T
	return nil, zero, false
}

// Max returns the lexicographically largest key and its value.
func (t *Trie[T]) Max() ([]byte, T, bool) {
	var zero T
	if t.root == nil {
		return nil, zero, false
	}
	return t.root.max(nil)
}

func (n *node[T]) max(acc []byte) ([]byte, T, bool) {
	key := append(acc, n.prefix...)
	for i := len(n.children) - 1; i >= 0; i-- {
		if k, v, ok := n.children[i].max(key); ok {
			return k, v, true
		}
	}
	if n.set {
		return key, n.value, true
	}
	var zero T
	return nil, zero, false
}

// String returns the stored keys and values, one per line in key order.
// Useful for debugging.
func (t *Trie[T]) String() string {
	var lines []string
	t.Ascend(nil, func(key []byte, value T) bool {
		lines = append(lines, fmt.Sprintf("%q: %v", key, value))
		return true
	})
	return strings.Join(lines, "\n")
}

// child returns the child whose prefix starts with b, or nil.
func (n *node[T]) child(b byte) *node[T] {
	i, ok := n.search(b)
	if !ok {
		return nil
	}
	return n.children[i]
}

// search locates the insertion point for a child starting with b and
// reports whether such a child already exists.
func (n *node[T]) search(b byte) (int, bool) {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].prefix[0] >= b
	})
	return i, i < len(n.children) && n.children[i].prefix[0] == b
}

// insertChild adds ch at its sorted position.
func (n *node[T]) insertChild(ch *node[T]) {
	i, _ := n.search(ch.prefix[0])
	n.children = slices.Insert(n.children, i, ch)
}

// commonLen returns the length of the longest common prefix of a and b.
func commonLen(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
