// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - append-only hash-linked chain of submission records
//
// Each record carries the SHA-256 of its own packed form and the hash
// of the record before it.  Index 0 is a fixed genesis record whose
// previous hash is all zero.
//
// A Ledger has a single writer.  Append holds the exclusive lock from
// reading the tail hash until the new record is stored, so concurrent
// callers are serialised and the chain stays contiguous.  Readers share
// the lock and always receive copies.
//
// Validation never modifies the chain.  A failure is reported as the
// first failing index and the reason; it is never repaired.
package ledger
