package buffer

// Shared is an immutable byte buffer whose contents can be shared freely
// across goroutines and data structures without copying.
//
// The zero value is an empty buffer ready to use. Copying a Shared value
// copies only the slice header; all copies view the same backing array.
// The garbage collector keeps the contents alive for as long as any copy
// is reachable, so there is no explicit release.
type Shared struct {
	data []byte
}

// NewShared creates a Shared buffer holding a copy of p.
//
// The input is copied exactly once; after that the contents never change.
// A nil or empty input yields an empty buffer.
func NewShared(p []byte) Shared {
	if len(p) == 0 {
		return Shared{}
	}
	data := make([]byte, len(p))
	copy(data, p)
	return Shared{data: data}
}

// Bytes returns the buffer contents without copying.
// Callers must not modify the returned slice.
func (s Shared) Bytes() []byte {
	return s.data
}

// Len returns the number of bytes in the buffer.
func (s Shared) Len() int {
	return len(s.data)
}

// Clone returns a copy of the buffer viewing the same backing array.
// The contents are not copied.
func (s Shared) Clone() Shared {
	return s
}

// String returns the contents copied into a string.
func (s Shared) String() string {
	return string(s.data)
}
