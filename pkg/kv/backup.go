package kv

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tokahuke/jammdb/pkg/byteview"
)

// Snapshot stream format:
//
//	[4B magic "JMDB"] [4B version LE] [1B flags]
//	body (zstd-compressed when the flag is set), as a msgpack stream:
//	  manifest
//	  repeated: bool(true), record
//	  bool(false), trailer
//
// The trailer carries the entry count and an xxHash64 over every key and
// value in stream order, so a restore can detect truncation and
// corruption.
var snapshotMagic = [4]byte{'J', 'M', 'D', 'B'}

const snapshotVersion uint32 = 1

const flagZstd byte = 1 << 0

// defaultRestoreBatch is the number of entries applied per BatchSet
// during Restore when RestoreOptions.BatchSize is unset.
const defaultRestoreBatch = 128

// SnapshotInfo describes a snapshot that was written or read.
type SnapshotInfo struct {
	// ID is the snapshot's unique identifier, assigned at backup time.
	ID string

	// CreatedAt is when the snapshot was taken, in UTC.
	CreatedAt time.Time

	// Count is the number of entries in the snapshot.
	Count uint64
}

// BackupOptions configures Backup.
type BackupOptions struct {
	// Compress enables zstd compression of the snapshot body.
	Compress bool
}

// RestoreOptions configures Restore.
type RestoreOptions struct {
	// BatchSize is the number of entries applied per BatchSet.
	// Defaults to 128 if zero or negative.
	BatchSize int
}

// manifest identifies a snapshot stream.
type manifest struct {
	ID        string    `msgpack:"id"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// record is one key-value pair in the snapshot stream.
type record struct {
	Key   []byte `msgpack:"k"`
	Value []byte `msgpack:"v"`
}

// trailer closes the stream with integrity data.
type trailer struct {
	Count uint64 `msgpack:"count"`
	Sum   uint64 `msgpack:"sum"`
}

// Backup writes a snapshot of every entry in s to w and returns its
// metadata. Entries are written in lexicographic key order.
//
// The snapshot is a point-in-time read of the store as seen by List;
// writes racing with the backup may or may not be included.
func Backup(ctx context.Context, s Store, w io.Writer, opts BackupOptions) (*SnapshotInfo, error) {
	bw := bufio.NewWriter(w)

	// The header stays uncompressed so a reader can sniff it.
	if _, err := bw.Write(snapshotMagic[:]); err != nil {
		return nil, fmt.Errorf("kv: backup magic: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, snapshotVersion); err != nil {
		return nil, fmt.Errorf("kv: backup version: %w", err)
	}
	var flags byte
	if opts.Compress {
		flags |= flagZstd
	}
	if err := bw.WriteByte(flags); err != nil {
		return nil, fmt.Errorf("kv: backup flags: %w", err)
	}

	body := io.Writer(bw)
	var zw *zstd.Encoder
	if opts.Compress {
		var err error
		zw, err = zstd.NewWriter(bw)
		if err != nil {
			return nil, fmt.Errorf("kv: backup compressor: %w", err)
		}
		body = zw
	}

	info := &SnapshotInfo{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	enc := msgpack.NewEncoder(body)
	if err := enc.Encode(manifest{ID: info.ID, CreatedAt: info.CreatedAt}); err != nil {
		return nil, fmt.Errorf("kv: backup manifest: %w", err)
	}

	digest := xxhash.New()
	for entry, err := range s.List(ctx, byteview.ByteView{}) {
		if err != nil {
			return nil, fmt.Errorf("kv: backup list: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := enc.EncodeBool(true); err != nil {
			return nil, fmt.Errorf("kv: backup record marker: %w", err)
		}
		rec := record{Key: entry.Key.Bytes(), Value: entry.Value.Bytes()}
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("kv: backup record: %w", err)
		}
		digest.Write(rec.Key)
		digest.Write(rec.Value)
		info.Count++
	}
	if err := enc.EncodeBool(false); err != nil {
		return nil, fmt.Errorf("kv: backup trailer marker: %w", err)
	}
	if err := enc.Encode(trailer{Count: info.Count, Sum: digest.Sum64()}); err != nil {
		return nil, fmt.Errorf("kv: backup trailer: %w", err)
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("kv: backup compressor close: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("kv: backup flush: %w", err)
	}
	return info, nil
}

// Restore reads a snapshot from r and applies its entries to s in
// batches, returning the snapshot's metadata. Existing keys are
// overwritten; keys absent from the snapshot are left alone.
//
// Restore is not atomic: batches already applied stay in the store if a
// later read or integrity check fails.
func Restore(ctx context.Context, s Store, r io.Reader, opts RestoreOptions) (*SnapshotInfo, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("kv: restore magic: %w", err)
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("kv: invalid snapshot magic %q", magic[:])
	}
	var version uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("kv: restore version: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("kv: unsupported snapshot version %d (want %d)", version, snapshotVersion)
	}
	flags, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("kv: restore flags: %w", err)
	}
	if flags&^flagZstd != 0 {
		return nil, fmt.Errorf("kv: unknown snapshot flags %#x", flags)
	}

	body := io.Reader(br)
	if flags&flagZstd != 0 {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("kv: restore decompressor: %w", err)
		}
		defer zr.Close()
		body = zr
	}

	dec := msgpack.NewDecoder(body)
	var man manifest
	if err := dec.Decode(&man); err != nil {
		return nil, fmt.Errorf("kv: restore manifest: %w", err)
	}
	info := &SnapshotInfo{ID: man.ID, CreatedAt: man.CreatedAt}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRestoreBatch
	}

	digest := xxhash.New()
	batch := make([]Entry, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.BatchSet(ctx, batch); err != nil {
			return fmt.Errorf("kv: restore batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		more, err := dec.DecodeBool()
		if err != nil {
			return nil, fmt.Errorf("kv: restore record marker: %w", err)
		}
		if !more {
			break
		}
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("kv: restore record: %w", err)
		}
		digest.Write(rec.Key)
		digest.Write(rec.Value)
		batch = append(batch, Entry{
			Key:   byteview.Own(rec.Key),
			Value: byteview.Own(rec.Value),
		})
		info.Count++
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	var tr trailer
	if err := dec.Decode(&tr); err != nil {
		return nil, fmt.Errorf("kv: restore trailer: %w", err)
	}
	if tr.Count != info.Count {
		return nil, fmt.Errorf("kv: snapshot count mismatch: stream has %d entries, trailer says %d", info.Count, tr.Count)
	}
	if tr.Sum != digest.Sum64() {
		return nil, fmt.Errorf("kv: snapshot checksum mismatch")
	}
	return info, nil
}
