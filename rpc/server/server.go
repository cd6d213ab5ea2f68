// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/manuscript-ledger/manuscriptd/counter"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/mode"
	"github.com/manuscript-ledger/manuscriptd/rpc/manuscript"
	"github.com/manuscript-ledger/manuscriptd/rpc/node"
	"github.com/manuscript-ledger/manuscriptd/rpc/records"
	"github.com/manuscript-ledger/manuscriptd/submission"
)

// Handles - the daemon state served over RPC
type Handles struct {
	Ledger  *ledger.Ledger
	Service *submission.Service
}

// Create - a server with every RPC service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, handles Handles) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	var statistics node.Statistics
	if nil != handles.Service {
		statistics = handles.Service.Pipeline()
		_ = server.Register(manuscript.New(log, handles.Service, mode.Is))
	}
	_ = server.Register(records.New(log, handles.Ledger))
	_ = server.Register(node.New(log, handles.Ledger, statistics, start, version, rpcCount))

	return server
}
