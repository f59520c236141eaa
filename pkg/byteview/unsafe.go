package byteview

import "unsafe"

// stringBytes exposes the bytes of s without allocating. The slice shares
// memory with the string and must never be written to; the package only
// hands it out through read-only paths.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
