// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// PoolHandle - access to one prefixed table of a database
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *Database
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
//
// the write is synced before returning
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return fault.DatabaseIsNotSet
	}
	return p.database.db.Put(p.prefixKey(key), value, &ldb_opt.WriteOptions{Sync: true})
}

// Get - read a value for a given key
//
// returns nil, nil if the key does not exist
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return nil, fault.DatabaseIsNotSet
	}
	value, err := p.database.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return false, fault.DatabaseIsNotSet
	}
	return p.database.db.Has(p.prefixKey(key), nil)
}
