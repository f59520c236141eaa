// Package buffer provides an immutable shared byte buffer.
//
// A Shared buffer is created once from a byte slice and never changes
// afterwards. Copies are cheap: they share the same backing storage, and
// the garbage collector frees it when the last copy goes away. This makes
// Shared safe to hand across goroutines and to embed in values that are
// themselves copied around, such as byteview.ByteView.
//
// Example usage:
//
//	buf := buffer.NewShared([]byte("payload"))
//
//	// Cheap copies, same storage.
//	other := buf.Clone()
//
//	// Read-only view of the contents.
//	data := other.Bytes()
package buffer
