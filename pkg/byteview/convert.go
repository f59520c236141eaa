package byteview

import (
	"github.com/tokahuke/jammdb/pkg/buffer"
)

// Source enumerates the types a ByteView can be built from. The set is
// closed on purpose: each member has a defined conversion, and anything
// outside the set is rejected at compile time.
//
// Byte arrays are admitted up to length 16. Larger arrays do not convert;
// slice them and pass the slice instead.
type Source interface {
	[]byte | string |
		buffer.Shared | *buffer.Shared |
		ByteView | *ByteView |
		[0]byte | [1]byte | [2]byte | [3]byte |
		[4]byte | [5]byte | [6]byte | [7]byte |
		[8]byte | [9]byte | [10]byte | [11]byte |
		[12]byte | [13]byte | [14]byte | [15]byte |
		[16]byte
}

// From converts src into a ByteView. The variant depends on the source
// type:
//
//   - []byte views the slice in place (borrowed, no copy); the caller
//     keeps ownership and must not modify the bytes while the view is
//     in use.
//   - string views the string's bytes in place (text, no copy).
//   - [N]byte copies the array once into a shared buffer.
//   - [buffer.Shared], by value or pointer, shares the buffer's backing
//     array (no copy).
//   - ByteView is returned as is; *ByteView yields an equivalent clone.
//
// A nil *buffer.Shared or nil *ByteView converts to an empty view.
func From[S Source](src S) ByteView {
	switch s := any(src).(type) {
	case []byte:
		return Borrow(s)
	case string:
		return ByteView{kind: KindText, s: s}
	case buffer.Shared:
		return ofShared(s)
	case *buffer.Shared:
		if s == nil {
			return ByteView{kind: KindShared}
		}
		return ofShared(*s)
	case ByteView:
		return s
	case *ByteView:
		if s == nil {
			return ByteView{}
		}
		return s.Clone()
	case [0]byte:
		return ofArray(s[:])
	case [1]byte:
		return ofArray(s[:])
	case [2]byte:
		return ofArray(s[:])
	case [3]byte:
		return ofArray(s[:])
	case [4]byte:
		return ofArray(s[:])
	case [5]byte:
		return ofArray(s[:])
	case [6]byte:
		return ofArray(s[:])
	case [7]byte:
		return ofArray(s[:])
	case [8]byte:
		return ofArray(s[:])
	case [9]byte:
		return ofArray(s[:])
	case [10]byte:
		return ofArray(s[:])
	case [11]byte:
		return ofArray(s[:])
	case [12]byte:
		return ofArray(s[:])
	case [13]byte:
		return ofArray(s[:])
	case [14]byte:
		return ofArray(s[:])
	case [15]byte:
		return ofArray(s[:])
	case [16]byte:
		return ofArray(s[:])
	}
	panic("byteview: unreachable conversion")
}

// Borrow returns a view of p without copying. The caller keeps ownership
// of p and must not modify it while the view is in use.
func Borrow(p []byte) ByteView {
	return ByteView{kind: KindBorrowed, b: p}
}

// Own returns a view that takes ownership of p. The caller must not use
// or modify p afterwards.
func Own(p []byte) ByteView {
	return ByteView{kind: KindOwned, b: p}
}

func ofShared(s buffer.Shared) ByteView {
	return ByteView{kind: KindShared, b: s.Bytes()}
}

func ofArray(p []byte) ByteView {
	return ByteView{kind: KindShared, b: buffer.NewShared(p).Bytes()}
}
