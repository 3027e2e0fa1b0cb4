// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package metadata

import (
	"sync"

	ssb "github.com/ssbc/go-ssb-model"
)

type memoryStore struct {
	mu     sync.Mutex
	closed bool
	data   map[ssb.MessageIdentifier]Metadata
}

// NewMemoryStore returns a Store that keeps everything in a map.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[ssb.MessageIdentifier]Metadata)}
}

var _ Store = (*memoryStore)(nil)

func (ms *memoryStore) Get(key ssb.MessageIdentifier) (Metadata, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return Metadata{}, false, Error{Code: ErrorCodeClosed}
	}
	md, has := ms.data[key]
	return md, has, nil
}

func (ms *memoryStore) Set(key ssb.MessageIdentifier, md Metadata) error {
	if err := checkKey(key); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return Error{Code: ErrorCodeClosed}
	}
	ms.data[key] = md
	return nil
}

func (ms *memoryStore) Update(key ssb.MessageIdentifier, fn func(*Metadata) error) error {
	if err := checkKey(key); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return Error{Code: ErrorCodeClosed}
	}
	md := ms.data[key]
	if err := fn(&md); err != nil {
		return err
	}
	ms.data[key] = md
	return nil
}

func (ms *memoryStore) Delete(key ssb.MessageIdentifier) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return Error{Code: ErrorCodeClosed}
	}
	delete(ms.data, key)
	return nil
}

func (ms *memoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.closed = true
	ms.data = nil
	return nil
}
