// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"
	"sync"

	"github.com/manuscript-ledger/manuscriptd/clock"
	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/similarity"
)

// Ledger - the chain of records and its optional backing store
type Ledger struct {
	sync.RWMutex
	records []Record
	store   Store
}

// New - memory only ledger holding just the genesis record
func New() *Ledger {
	return &Ledger{
		records: []Record{Genesis()},
	}
}

// Open - ledger backed by a store
//
// an empty store is initialised with the genesis record
// the loaded chain is not validated here, call Validate
func Open(store Store) (*Ledger, error) {
	records, err := store.Load()
	if nil != err {
		return nil, err
	}

	if 0 == len(records) {
		genesis := Genesis()
		err = store.Append(genesis)
		if nil != err {
			return nil, err
		}
		records = []Record{genesis}
	}

	return &Ledger{
		records: records,
		store:   store,
	}, nil
}

// Append - link a new record to the tail
//
// nothing is appended if the store fails
func (ledger *Ledger) Append(digest contentdigest.Digest, score float64, label string, verdict similarity.Verdict, c clock.Clock) (Record, error) {

	if !verdict.Decision.IsValid() {
		return Record{}, fault.InvalidDecision
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Record{}, fault.InvalidScore
	}

	ledger.Lock()
	defer ledger.Unlock()

	tail := ledger.records[len(ledger.records)-1]

	record := Record{
		SequenceIndex:    uint64(len(ledger.records)),
		Timestamp:        c.Now().UTC().Round(0),
		ManuscriptDigest: digest,
		AuthorshipScore:  score,
		AuthorshipLabel:  label,
		Similarity:       verdict,
		PreviousHash:     tail.Hash,
	}

	record.Hash = record.ComputeHash()

	if nil != ledger.store {
		err := ledger.store.Append(record)
		if nil != err {
			return Record{}, err
		}
	}

	ledger.records = append(ledger.records, record)
	return record, nil
}

// Height - number of records including the genesis
func (ledger *Ledger) Height() uint64 {
	ledger.RLock()
	defer ledger.RUnlock()
	return uint64(len(ledger.records))
}

// Tail - the most recent record
func (ledger *Ledger) Tail() Record {
	ledger.RLock()
	defer ledger.RUnlock()
	return ledger.records[len(ledger.records)-1]
}

// Get - record at an index
func (ledger *Ledger) Get(index uint64) (Record, error) {
	ledger.RLock()
	defer ledger.RUnlock()
	if index >= uint64(len(ledger.records)) {
		return Record{}, fault.RecordNotFound
	}
	return ledger.records[index], nil
}

// Records - snapshot of the whole chain
func (ledger *Ledger) Records() []Record {
	ledger.RLock()
	defer ledger.RUnlock()
	return append([]Record(nil), ledger.records...)
}

// Range - up to count records starting at start
//
// an empty slice if start is beyond the tail
func (ledger *Ledger) Range(start uint64, count int) []Record {
	ledger.RLock()
	defer ledger.RUnlock()

	height := uint64(len(ledger.records))
	if count <= 0 || start >= height {
		return []Record{}
	}
	end := start + uint64(count)
	if end > height || end < start {
		end = height
	}
	return append([]Record(nil), ledger.records[start:end]...)
}

// Find - indices of every record for a manuscript digest
func (ledger *Ledger) Find(digest contentdigest.Digest) []uint64 {
	ledger.RLock()
	defer ledger.RUnlock()

	found := []uint64{}
	for _, record := range ledger.records[1:] {
		if digest == record.ManuscriptDigest {
			found = append(found, record.SequenceIndex)
		}
	}
	return found
}

// Validate - check the whole chain
func (ledger *Ledger) Validate() ValidationResult {
	ledger.RLock()
	defer ledger.RUnlock()
	return ValidateRecords(ledger.records)
}
