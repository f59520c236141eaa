// Package byteview provides a unified read-only view over byte data held
// in different ways: borrowed slices, shared immutable buffers, transferred
// slices, and strings.
//
// A ByteView hides how the underlying bytes are held. Equality, ordering,
// and hashing are defined over the viewed bytes alone, so views built from
// different source types compare interchangeably. Views are cheap values:
// copying one never copies the bytes it views.
//
// Construction goes through [From], which accepts a closed set of source
// types (see [Source]), or through the explicit [Borrow] and [Own]
// constructors for slices whose ownership matters.
package byteview

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies how a ByteView holds its bytes.
type Kind uint8

const (
	// KindBorrowed views a slice owned by the caller.
	KindBorrowed Kind = iota
	// KindShared views a shared immutable buffer.
	KindShared
	// KindOwned views a slice whose ownership was transferred to the view.
	KindOwned
	// KindText views the bytes of a string.
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBorrowed:
		return "borrowed"
	case KindShared:
		return "shared"
	case KindOwned:
		return "owned"
	case KindText:
		return "text"
	}
	return "unknown"
}

// ByteView is a read-only view over a sequence of bytes.
//
// The zero value is an empty borrowed view, ready to use. ByteView values
// are passed by value and copied freely; the viewed bytes are never copied
// by doing so. A view holds no locks and performs no synchronization: the
// bytes it views are immutable by contract, so concurrent reads are safe,
// and anything beyond that is the caller's concern.
type ByteView struct {
	kind Kind
	b    []byte // payload for Borrowed, Shared, and Owned views
	s    string // payload for Text views
}

// Size returns the number of bytes viewed. It runs in constant time.
func (v ByteView) Size() int {
	if v.kind == KindText {
		return len(v.s)
	}
	return len(v.b)
}

// Bytes returns the viewed bytes without copying.
// Callers must not modify the returned slice.
func (v ByteView) Bytes() []byte {
	if v.kind == KindText {
		return stringBytes(v.s)
	}
	return v.b
}

// String returns the viewed bytes as a string.
// Text views return their string in place; other views copy.
func (v ByteView) String() string {
	if v.kind == KindText {
		return v.s
	}
	return string(v.b)
}

// Kind reports which variant the view holds. Two views with equal bytes
// are interchangeable regardless of kind; this is informational.
func (v ByteView) Kind() Kind {
	return v.kind
}

// Clone returns a view of the same bytes. The contents are not copied.
func (v ByteView) Clone() ByteView {
	return v
}

// Equal reports whether v and w view the same byte sequence.
// Only the bytes matter; the kinds may differ.
func (v ByteView) Equal(w ByteView) bool {
	return bytes.Equal(v.Bytes(), w.Bytes())
}

// Compare orders v against w lexicographically by the viewed bytes,
// returning -1, 0, or +1 like [bytes.Compare].
func (v ByteView) Compare(w ByteView) int {
	return bytes.Compare(v.Bytes(), w.Bytes())
}

// Hash64 returns the 64-bit xxHash digest of the viewed bytes.
// Views that are Equal hash identically, whatever their kinds.
func (v ByteView) Hash64() uint64 {
	return xxhash.Sum64(v.Bytes())
}
