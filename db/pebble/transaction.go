package pebble

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/NethermindEth/starkevents/db"
	"github.com/cockroachdb/pebble"
)

var _ db.Transaction = (*Transaction)(nil)

type Transaction struct {
	batch    *pebble.Batch
	snapshot *pebble.Snapshot
	lock     *sync.Mutex
	listener db.EventListener
}

// Discard : see db.Transaction.Discard
func (t *Transaction) Discard() (err error) {
	if t.batch != nil {
		err = t.batch.Close()
		t.batch = nil
	}
	if t.snapshot != nil {
		err = errors.Join(err, t.snapshot.Close())
		t.snapshot = nil
	}

	if t.lock != nil {
		t.lock.Unlock()
		t.lock = nil
	}
	return err
}

// Commit : see db.Transaction.Commit
func (t *Transaction) Commit() (err error) {
	if t.batch == nil {
		return db.ErrDiscardedTransaction
	}
	defer db.CloseAndWrapOnError(t.Discard, &err)
	return t.batch.Commit(pebble.Sync)
}

// Set : see db.Transaction.Set
func (t *Transaction) Set(key, val []byte) error {
	if t.batch == nil {
		return db.ErrReadOnlyTransaction
	} else if len(key) == 0 {
		return errors.New("empty key")
	}

	start := time.Now()
	defer func() { t.listener.OnIO(true, time.Since(start)) }()
	return t.batch.Set(key, val, pebble.Sync)
}

// Delete : see db.Transaction.Delete
func (t *Transaction) Delete(key []byte) error {
	if t.batch == nil {
		return db.ErrReadOnlyTransaction
	}

	start := time.Now()
	defer func() { t.listener.OnIO(true, time.Since(start)) }()
	return t.batch.Delete(key, pebble.Sync)
}

// Get : see db.Transaction.Get
func (t *Transaction) Get(key []byte, cb func([]byte) error) (err error) {
	var val []byte
	var closer io.Closer

	start := time.Now()
	switch {
	case t.batch != nil:
		val, closer, err = t.batch.Get(key)
	case t.snapshot != nil:
		val, closer, err = t.snapshot.Get(key)
	default:
		return db.ErrDiscardedTransaction
	}
	t.listener.OnIO(false, time.Since(start))

	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return db.ErrKeyNotFound
		}
		return err
	}
	defer db.CloseAndWrapOnError(closer.Close, &err)
	return cb(val)
}

// Has : see db.Transaction.Has
func (t *Transaction) Has(key []byte) (bool, error) {
	err := t.Get(key, func([]byte) error { return nil })
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Impl : see db.Transaction.Impl
func (t *Transaction) Impl() any {
	if t.batch != nil {
		return t.batch
	} else if t.snapshot != nil {
		return t.snapshot
	}
	return nil
}

// NewIterator : see db.Transaction.NewIterator
func (t *Transaction) NewIterator() (db.Iterator, error) {
	var (
		iter *pebble.Iterator
		err  error
	)
	switch {
	case t.batch != nil:
		iter, err = t.batch.NewIter(nil)
	case t.snapshot != nil:
		iter, err = t.snapshot.NewIter(nil)
	default:
		return nil, db.ErrDiscardedTransaction
	}
	if err != nil {
		return nil, err
	}

	return &iterator{iter: iter}, nil
}
