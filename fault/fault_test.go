// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// each error must belong to exactly one class
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{fault.AlreadyInitialised, true, false, false, false, false, false},
		{fault.KeyFileExists, true, false, false, false, false, false},
		{fault.InvalidCount, false, true, false, false, false, false},
		{fault.InvalidThreshold, false, true, false, false, false, false},
		{fault.InvalidScore, false, true, false, false, false, false},
		{fault.InvalidDigestLength, false, false, true, false, false, false},
		{fault.TextTooLarge, false, false, true, false, false, false},
		{fault.CorpusUnavailable, false, false, false, true, false, false},
		{fault.RecordNotFound, false, false, false, true, false, false},
		{fault.ClassifierUnavailable, false, false, false, false, true, false},
		{fault.ClassifierTimeout, false, false, false, false, true, false},
		{fault.InvalidPackVersion, false, false, false, false, false, true},
		{fault.TruncatedRecord, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

// wrapped errors are not classified, only the bare instances
func TestWrappedIsNotClassified(t *testing.T) {
	err := fmt.Errorf("stage: %w", fault.ClassifierUnavailable)
	if fault.IsErrProcess(err) {
		t.Errorf("wrapped error unexpectedly classified: %v", err)
	}
}
