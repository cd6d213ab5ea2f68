// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submission - turn a manuscript into a ledger record
//
// a submission digests the text, classifies its authorship, compares
// it with the corpus and appends the result to the ledger; if any
// stage fails nothing is appended
package submission
