package kv

import (
	"context"
	"errors"
	"iter"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/tokahuke/jammdb/pkg/byteview"
)

// Badger is a Store implementation backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// SyncWrites syncs every write to disk before acknowledging it.
	// Slower, but survives a crash between write and sync.
	SyncWrites bool

	// Logger sets the badger logger. If nil, badger output is routed
	// through logrus with info and debug messages dropped.
	Logger badger.Logger
}

// NewBadger creates a new BadgerDB-backed Store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("kv: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.SyncWrites {
		dbOpts = dbOpts.WithSyncWrites(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(logrusLogger{logrus.StandardLogger()})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("kv: badger opened (dir=%q in_memory=%v)", opts.Dir, opts.InMemory)
	return &Badger{db: db}, nil
}

func (b *Badger) Get(_ context.Context, key byteview.ByteView) (byteview.ByteView, error) {
	if err := checkKey(key); err != nil {
		return byteview.ByteView{}, err
	}
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.Bytes())
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return byteview.ByteView{}, ErrNotFound
	}
	if err != nil {
		return byteview.ByteView{}, err
	}
	return byteview.Own(val), nil
}

func (b *Badger) Set(_ context.Context, key, value byteview.ByteView) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.Bytes(), value.Bytes())
	})
}

func (b *Badger) Delete(_ context.Context, key byteview.ByteView) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.Bytes())
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (b *Badger) List(_ context.Context, prefix byteview.ByteView) iter.Seq2[Entry, error] {
	p := prefix.Bytes()

	return func(yield func(Entry, error) bool) {
		err := b.db.View(func(txn *badger.Txn) error {
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.Prefix = p
			it := txn.NewIterator(iterOpts)
			defer it.Close()

			for it.Seek(p); it.ValidForPrefix(p); it.Next() {
				item := it.Item()
				key := item.KeyCopy(nil)

				val, err := item.ValueCopy(nil)
				if err != nil {
					if !yield(Entry{}, err) {
						return nil
					}
					continue
				}

				entry := Entry{
					Key:   byteview.Own(key),
					Value: byteview.Own(val),
				}
				if !yield(entry, nil) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, err)
		}
	}
}

func (b *Badger) BatchSet(_ context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := checkKey(e.Key); err != nil {
			return err
		}
	}
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, e := range entries {
		if err := wb.Set(e.Key.Bytes(), e.Value.Bytes()); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *Badger) BatchDelete(_ context.Context, keys []byteview.ByteView) error {
	for _, key := range keys {
		if err := checkKey(key); err != nil {
			return err
		}
	}
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key.Bytes()); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *Badger) Close() error {
	logrus.Debug("kv: badger closing")
	return b.db.Close()
}

// logrusLogger adapts logrus to badger.Logger, suppressing badger's
// chatty info and debug output.
type logrusLogger struct {
	log *logrus.Logger
}

func (l logrusLogger) Errorf(f string, v ...interface{})   { l.log.Errorf("badger: "+f, v...) }
func (l logrusLogger) Warningf(f string, v ...interface{}) { l.log.Warnf("badger: "+f, v...) }
func (l logrusLogger) Infof(string, ...interface{})        {}
func (l logrusLogger) Debugf(string, ...interface{})       {}
