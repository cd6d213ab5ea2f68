// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Records  *PoolHandle `prefix:"R"`
	TestData *PoolHandle `prefix:"Z"`
}

// Database - an open LevelDB store and its pools
type Database struct {
	sync.RWMutex
	name    string
	version int
	db      *leveldb.DB
	Pool    Pools
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// CurrentVersion - version written to new databases
const CurrentVersion = 0x100

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open up the database connection
//
// the ".leveldb" suffix is appended to the name
// a read only open requires an existing database of the current version
func Open(name string, readOnly bool) (*Database, error) {

	filename := name + ".leveldb"

	db, version, err := getDB(filename, readOnly)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > CurrentVersion {
		logger.Criticalf("database version: %d > current version: %d", version, CurrentVersion)
		return nil, fault.IncompatibleDatabase
	}

	// prevent readOnly from modifying the database
	if readOnly && version != CurrentVersion {
		logger.Criticalf("database version: %d  current: %d", version, CurrentVersion)
		return nil, fault.IncompatibleDatabase
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(db, CurrentVersion)
		if nil != err {
			return nil, err
		}
		version = CurrentVersion
	}

	database := &Database{
		name:    filename,
		version: version,
		db:      db,
	}

	err = database.setupPools()
	if nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return database, nil
}

// scan each field of the pools struct
func (database *Database) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(database.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&database.Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: database,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Name - file name of the database
func (database *Database) Name() string {
	return database.name
}

// Version - on-disk version of the database
func (database *Database) Version() int {
	return database.version
}

// Close - close the database connection
//
// pools return fault.DatabaseIsNotSet after this
func (database *Database) Close() {
	database.Lock()
	if nil != database.db {
		database.db.Close()
		database.db = nil
	}
	database.Unlock()
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
