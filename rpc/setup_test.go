// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"io/ioutil"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/fixtures"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/rpc"
	"github.com/manuscript-ledger/manuscriptd/rpc/certificate"
	"github.com/manuscript-ledger/manuscriptd/rpc/listeners"
	"github.com/manuscript-ledger/manuscriptd/rpc/records"
	"github.com/manuscript-ledger/manuscriptd/rpc/server"
)

const listenAddress = "127.0.0.1:17131"

func TestInitialiseFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "rpc")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	configuration := &listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{listenAddress},
		Certificate:        filepath.Join(dir, "rpc.crt"),
		PrivateKey:         filepath.Join(dir, "rpc.key"),
	}

	err = rpc.Initialise(configuration, server.Handles{Ledger: ledger.New()}, "1.0")
	assert.NotNil(t, err, "started without certificate")

	err = certificate.MakeSelfSigned("rpc", configuration.Certificate, configuration.PrivateKey, nil)
	require.Nil(t, err, "make certificate")

	err = rpc.Initialise(configuration, server.Handles{Ledger: ledger.New()}, "1.0")
	require.Nil(t, err, "initialise")

	err = rpc.Initialise(configuration, server.Handles{Ledger: ledger.New()}, "1.0")
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	conn, err := tls.Dial("tcp", listenAddress, &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)

	var reply records.ValidateReply
	err = client.Call("Ledger.Validate", &records.ValidateArguments{}, &reply)
	assert.Nil(t, err, "Ledger.Validate")
	assert.True(t, reply.Valid, "valid")
	assert.Equal(t, uint64(1), reply.Height, "height")
	assert.Equal(t, uint64(1), rpc.Connections(), "connection count")
	client.Close()

	assert.Nil(t, rpc.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second finalise")
}
