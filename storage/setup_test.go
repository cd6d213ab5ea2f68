// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/fixtures"
	"github.com/manuscript-ledger/manuscriptd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

// common test setup routines

// configure for testing
func setup(t *testing.T) (*storage.Database, string) {
	directory, err := ioutil.TempDir("", "storage-test")
	require.Nil(t, err, "temp dir")

	name := filepath.Join(directory, "test")
	database, err := storage.Open(name, storage.ReadWrite)
	require.Nil(t, err, "storage open")

	return database, name
}

// post test cleanup
func teardown(database *storage.Database, name string) {
	database.Close()
	os.RemoveAll(filepath.Dir(name))
}

func TestOpenTagsVersion(t *testing.T) {
	database, name := setup(t)
	defer teardown(database, name)

	assert.Equal(t, storage.CurrentVersion, database.Version(), "wrong version")
	assert.Equal(t, name+".leveldb", database.Name(), "wrong name")
	assert.NotNil(t, database.Pool.Records, "records pool not set")
	assert.NotNil(t, database.Pool.TestData, "test pool not set")

	// reopen read only
	database.Close()
	database, err := storage.Open(name, storage.ReadOnly)
	require.Nil(t, err, "read only open")
	defer database.Close()
	assert.Equal(t, storage.CurrentVersion, database.Version(), "wrong version after reopen")
}

func TestOpenReadOnlyMissing(t *testing.T) {
	directory, err := ioutil.TempDir("", "storage-test")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(directory)

	_, err = storage.Open(filepath.Join(directory, "absent"), storage.ReadOnly)
	assert.NotNil(t, err, "missing database opened read only")
}

func TestOpenRefusesNewerVersion(t *testing.T) {
	directory, err := ioutil.TempDir("", "storage-test")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(directory)

	name := filepath.Join(directory, "future")

	db, err := leveldb.OpenFile(name+".leveldb", nil)
	require.Nil(t, err, "leveldb create")
	version := make([]byte, 4)
	binary.BigEndian.PutUint32(version, storage.CurrentVersion+1)
	err = db.Put([]byte("\x00VERSION"), version, nil)
	require.Nil(t, err, "version put")
	db.Close()

	_, err = storage.Open(name, storage.ReadWrite)
	assert.Equal(t, fault.IncompatibleDatabase, err, "newer database opened")
}

func TestClosedDatabase(t *testing.T) {
	database, name := setup(t)
	defer teardown(database, name)

	database.Close()

	p := database.Pool.TestData
	assert.Equal(t, fault.DatabaseIsNotSet, p.Put([]byte("k"), []byte("v")), "put after close")

	_, err := p.Get([]byte("k"))
	assert.Equal(t, fault.DatabaseIsNotSet, err, "get after close")

	_, err = p.Has([]byte("k"))
	assert.Equal(t, fault.DatabaseIsNotSet, err, "has after close")

	_, err = p.NewFetchCursor().Fetch(1)
	assert.Equal(t, fault.DatabaseIsNotSet, err, "fetch after close")

	// closing twice is harmless
	database.Close()
}
