// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package metadata

import (
	"encoding/json"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// keys are prefixed so the database can be shared with other indexes
var badgerPrefix = []byte("metadata:")

func badgerKey(key ssb.MessageIdentifier) []byte {
	k := make([]byte, 0, len(badgerPrefix)+len(key))
	k = append(k, badgerPrefix...)
	return append(k, key...)
}

func badgerOpts(dbPath string) badger.Options {
	return badger.DefaultOptions(dbPath).
		WithMemTableSize(1 << 25).
		WithValueLogFileSize(1 << 25).
		WithNumCompactors(2).
		WithLogger(nil)
}

type badgerStore struct {
	db     *badger.DB
	closed uint32
}

// OpenBadger opens (or creates) a badger database in dbPath.
func OpenBadger(dbPath string) (Store, error) {
	db, err := badger.Open(badgerOpts(dbPath))
	if err != nil {
		return nil, errors.Wrapf(err, "metadata: failed to open badger database at %s", dbPath)
	}
	return &badgerStore{db: db}, nil
}

// OpenBadgerInMemory returns a badger backed store that never touches the disk.
func OpenBadgerInMemory() (Store, error) {
	db, err := badger.Open(badgerOpts("").WithInMemory(true))
	if err != nil {
		return nil, errors.Wrap(err, "metadata: failed to open in-memory badger")
	}
	return &badgerStore{db: db}, nil
}

var _ Store = (*badgerStore)(nil)

func (bs *badgerStore) isClosed() bool { return atomic.LoadUint32(&bs.closed) == 1 }

func (bs *badgerStore) Get(key ssb.MessageIdentifier) (Metadata, bool, error) {
	if bs.isClosed() {
		return Metadata{}, false, Error{Code: ErrorCodeClosed}
	}
	var (
		md  Metadata
		has bool
	)
	err := bs.db.View(func(txn *badger.Txn) error {
		var err error
		has, err = get(txn, key, &md)
		return err
	})
	if err != nil {
		return Metadata{}, false, Error{Code: ErrorCodeInternal, Key: key, Cause: err}
	}
	return md, has, nil
}

func get(txn *badger.Txn, key ssb.MessageIdentifier, md *Metadata) (bool, error) {
	it, err := txn.Get(badgerKey(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	err = it.Value(func(v []byte) error {
		return json.Unmarshal(v, md)
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to decode stored value")
	}
	return true, nil
}

func set(txn *badger.Txn, key ssb.MessageIdentifier, md Metadata) error {
	v, err := json.Marshal(md)
	if err != nil {
		return errors.Wrap(err, "failed to encode value")
	}
	return txn.Set(badgerKey(key), v)
}

func (bs *badgerStore) Set(key ssb.MessageIdentifier, md Metadata) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if bs.isClosed() {
		return Error{Code: ErrorCodeClosed}
	}
	err := bs.db.Update(func(txn *badger.Txn) error {
		return set(txn, key, md)
	})
	if err != nil {
		return Error{Code: ErrorCodeInternal, Key: key, Cause: err}
	}
	return nil
}

// fnError keeps errors of Update callbacks apart from database errors
type fnError struct{ error }

func (bs *badgerStore) Update(key ssb.MessageIdentifier, fn func(*Metadata) error) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if bs.isClosed() {
		return Error{Code: ErrorCodeClosed}
	}
	update := func(txn *badger.Txn) error {
		var md Metadata
		if _, err := get(txn, key, &md); err != nil {
			return err
		}
		if err := fn(&md); err != nil {
			return fnError{err}
		}
		return set(txn, key, md)
	}
	err := bs.db.Update(update)
	// concurrent read-modify-write of the same key, run fn again on the new value
	for errors.Is(err, badger.ErrConflict) {
		err = bs.db.Update(update)
	}
	if err != nil {
		if fe, ok := err.(fnError); ok {
			return fe.error
		}
		return Error{Code: ErrorCodeInternal, Key: key, Cause: err}
	}
	return nil
}

func (bs *badgerStore) Delete(key ssb.MessageIdentifier) error {
	if bs.isClosed() {
		return Error{Code: ErrorCodeClosed}
	}
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(key))
	})
	if err != nil {
		return Error{Code: ErrorCodeInternal, Key: key, Cause: err}
	}
	return nil
}

func (bs *badgerStore) Close() error {
	if !atomic.CompareAndSwapUint32(&bs.closed, 0, 1) {
		return nil
	}
	return errors.Wrap(bs.db.Close(), "metadata: failed to close badger")
}
