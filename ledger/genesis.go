// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"time"

	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/similarity"
)

// GenesisLabel - authorship label of the genesis record
const GenesisLabel = "N/A"

// Genesis - the fixed record at index 0
func Genesis() Record {
	record := Record{
		SequenceIndex:    0,
		Timestamp:        time.Unix(0, 0).UTC(),
		ManuscriptDigest: contentdigest.Zero,
		AuthorshipScore:  0,
		AuthorshipLabel:  GenesisLabel,
		Similarity: similarity.Verdict{
			BestMatchID: "",
			Score:       0,
			Decision:    similarity.NoPriorCorpus,
		},
		PreviousHash: contentdigest.Zero,
	}
	record.Hash = record.ComputeHash()
	return record
}

// genesis computed once
var (
	genesisPacked = Genesis().Pack()
	genesisHash   = Genesis().Hash
)

// IsGenesis - record is byte for byte the canonical genesis
func IsGenesis(record Record) bool {
	return genesisHash == record.Hash && bytes.Equal(genesisPacked, record.Pack())
}
