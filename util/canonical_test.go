// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/util"
)

func TestCanonical(t *testing.T) {
	testData := []struct {
		in  string
		out string
		v6  bool
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234", false},
		{"127.0.0.1:1", "127.0.0.1:1", false},
		{" 127.0.0.1:1 ", "127.0.0.1:1", false},
		{"127.0.0.1:65535", "127.0.0.1:65535", false},
		{"0.0.0.0:1234", "0.0.0.0:1234", false},
		{"[::1]:1234", "[::1]:1234", true},
		{"[::]:1234", "[::]:1234", true},
		{"[0:0::0:0]:1234", "[::]:1234", true},
		{"[0:0:0:0::1]:1234", "[::1]:1234", true},
	}

	for i, d := range testData {
		c, v6, err := util.CanonicalIPandPort("tcp://", d.in)
		assert.Nil(t, err, "%d: %q", i, d.in)
		assert.Equal(t, "tcp://"+d.out, c, "%d: %q", i, d.in)
		assert.Equal(t, d.v6, v6, "%d: %q IPv6", i, d.in)
	}
}

func TestCanonicalIP(t *testing.T) {
	testData := []string{
		"127.1:1234",
		"256.0.0.0:1234",
		"0.256.0.0:1234",
		"0.0.256.0:1234",
		"0.0.0.256:1234",
		"0:0:1234",
		"[]:1234",
		"[as34::]:1234",
		"[1ffff::]:1234",
		"*:1234",
		"localhost",
	}

	for i, d := range testData {
		_, _, err := util.CanonicalIPandPort("", d)
		assert.Equal(t, fault.InvalidIpAddress, err, "%d: %q", i, d)
	}
}

func TestCanonicalPort(t *testing.T) {
	testData := []string{
		"127.0.0.1:0",
		"127.0.0.1:65536",
		"127.0.0.1:-1",
		"127.0.0.1:port",
	}

	for i, d := range testData {
		_, _, err := util.CanonicalIPandPort("", d)
		assert.Equal(t, fault.InvalidPortNumber, err, "%d: %q", i, d)
	}
}
