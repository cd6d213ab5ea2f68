// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. index        = ledger sequence index as big endian uint64 (8 bytes)
// 4. packed       = versioned binary ledger record without its hash
// 5. hash         = SHA-256(packed) 32 bytes
//
// Version:
//
//   \x00VERSION                - database version
//                                data: big endian uint32
//
// Ledger:
//
//   R ++ index                 - ledger records
//                                data: packed ++ hash
//
// Testing:
//   Z ++ key                   - testing data
package storage
