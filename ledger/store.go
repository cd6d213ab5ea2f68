// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/storage"
)

// Store - durable backing for a ledger
type Store interface {
	Append(Record) error
	Load() ([]Record, error)
}

// PoolStore - records in a storage pool keyed by big endian index
type PoolStore struct {
	pool *storage.PoolHandle
}

// NewPoolStore - store backed by the records pool
func NewPoolStore(pool *storage.PoolHandle) *PoolStore {
	return &PoolStore{
		pool: pool,
	}
}

// Append - write one record, refusing to overwrite an index
func (s *PoolStore) Append(record Record) error {
	key := indexKey(record.SequenceIndex)

	found, err := s.pool.Has(key)
	if nil != err {
		return err
	}
	if found {
		return fault.UnexpectedRecordIndex
	}
	return s.pool.Put(key, record.StoredValue())
}

// Load - read every record in index order
//
// keys must run 0, 1, 2, … without gaps
func (s *PoolStore) Load() ([]Record, error) {
	records := make([]Record, 0, 64)

	err := s.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(key) || uint64(len(records)) != binary.BigEndian.Uint64(key) {
			return fault.UnexpectedRecordIndex
		}
		record, err := RecordFromStoredValue(value)
		if nil != err {
			return err
		}
		records = append(records, record)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}

// Get - read one record
func (s *PoolStore) Get(index uint64) (Record, error) {
	value, err := s.pool.Get(indexKey(index))
	if nil != err {
		return Record{}, err
	}
	if nil == value {
		return Record{}, fault.RecordNotFound
	}
	return RecordFromStoredValue(value)
}

func indexKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}
