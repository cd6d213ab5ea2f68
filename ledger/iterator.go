// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

// Iterator - ascending walk over a ledger
//
// records appended during the walk are included
type Iterator struct {
	ledger *Ledger
	next   uint64
}

// Iterator - start a walk at the genesis record
func (ledger *Ledger) Iterator() *Iterator {
	return &Iterator{
		ledger: ledger,
	}
}

// Next - the next record, false at the end
func (it *Iterator) Next() (Record, bool) {
	it.ledger.RLock()
	defer it.ledger.RUnlock()

	if it.next >= uint64(len(it.ledger.records)) {
		return Record{}, false
	}
	record := it.ledger.records[it.next]
	it.next += 1
	return record, true
}

// Reset - restart from the genesis record
func (it *Iterator) Reset() {
	it.next = 0
}
