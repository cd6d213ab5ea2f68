// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/chain"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name    string
		valid   bool
		testing bool
	}{
		{chain.Live, true, false},
		{chain.Testing, true, true},
		{chain.Local, true, true},
		{"", false, false},
		{"LIVE", false, false},
		{"bitmark", false, false},
	}

	for i, item := range tests {
		assert.Equal(t, item.valid, chain.Valid(item.name), "%d: valid: %q", i, item.name)
		assert.Equal(t, item.testing, chain.IsTesting(item.name), "%d: testing: %q", i, item.name)
	}
}
