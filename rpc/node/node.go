// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/manuscript-ledger/manuscriptd/counter"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/mode"
	"github.com/manuscript-ledger/manuscriptd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Statistics - submission counts
type Statistics interface {
	Submissions() uint64
	Failures() uint64
}

// Node - type for RPC calls
type Node struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Start      time.Time
	Version    string
	Ledger     *ledger.Ledger
	Statistics Statistics
	counter    *counter.Counter
}

// New - create node RPC handler
func New(log *logger.L, l *ledger.Ledger, statistics Statistics, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:      start,
		Version:    version,
		Ledger:     l,
		Statistics: statistics,
		counter:    counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain       string    `json:"chain"`
	Mode        string    `json:"mode"`
	Ledger      TailInfo  `json:"ledger"`
	Submissions Counters  `json:"submissions"`
	RPCs        uint64    `json:"rpcs"`
	Version     string    `json:"version"`
	Uptime      string    `json:"uptime"`
	Started     time.Time `json:"started"`
}

// TailInfo - the most recent record held by the node
type TailInfo struct {
	Height   uint64 `json:"height"`
	TailHash string `json:"tailHash"`
}

// Counters - submission counters
type Counters struct {
	Accepted uint64 `json:"accepted"`
	Failed   uint64 `json:"failed"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Ledger {
		return fault.NotInitialised
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Ledger = TailInfo{
		Height:   node.Ledger.Height(),
		TailHash: node.Ledger.Tail().Hash.String(),
	}
	if nil != node.Statistics {
		reply.Submissions = Counters{
			Accepted: node.Statistics.Submissions(),
			Failed:   node.Statistics.Failures(),
		}
	}
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Started = node.Start
	return nil
}
