// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package corpus

// Snapshot - document identifier → text
//
// each call to Snapshot returns a new map owned by the caller
type Snapshot map[string]string

// Source - provides the corpus for one evaluation
type Source interface {
	Snapshot() (Snapshot, error)
}

// Archiver - adds a manuscript to the corpus
type Archiver interface {
	Archive(id string, text string) error
}
