// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package corpus - the previously recorded manuscripts
//
// A Directory holds one manuscript per file; the file name is the
// document identifier.  Snapshots are cached until the cache expires
// or a Watcher sees the directory change.
package corpus
