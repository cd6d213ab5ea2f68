// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package records - RPC access to the ledger
//
// registered under the service name "Ledger"
package records

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// MaximumList - limit for count
const MaximumList = 100

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

// New - create ledger RPC handler
func New(log *logger.L, l *ledger.Ledger) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Ledger:  l,
	}
}

// ---

// ValidateArguments - empty arguments for validate request
type ValidateArguments struct{}

// ValidateReply - outcome of a full chain validation
type ValidateReply struct {
	Valid  bool   `json:"valid"`
	Status string `json:"status"`
	Index  uint64 `json:"index"`
	Reason string `json:"reason"`
	Height uint64 `json:"height"`
}

// Validate - check the whole chain
func (l *Ledger) Validate(_ *ValidateArguments, reply *ValidateReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	result := l.Ledger.Validate()
	if !result.OK() {
		l.Log.Warnf("validate: %s", result)
	}

	reply.Valid = result.OK()
	reply.Status = result.Status.String()
	reply.Index = result.Index
	reply.Reason = result.Reason.String()
	reply.Height = result.Height
	return nil
}

// ---

// RecordArguments - index of the record
type RecordArguments struct {
	Index uint64 `json:"index,string"`
}

// RecordReply - a single record
type RecordReply struct {
	Record ledger.Record `json:"record"`
}

// Record - fetch one record
func (l *Ledger) Record(arguments *RecordArguments, reply *RecordReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	record, err := l.Ledger.Get(arguments.Index)
	if nil != err {
		return err
	}
	reply.Record = record
	return nil
}

// ---

// ListArguments - a page of records
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - records and the start of the next page
type ListReply struct {
	Records   []ledger.Record `json:"records"`
	NextStart uint64          `json:"nextStart,string"`
}

// List - records in ascending index order
func (l *Ledger) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(l.Limiter, arguments.Count, MaximumList); nil != err {
		return err
	}

	records := l.Ledger.Range(arguments.Start, arguments.Count)
	reply.Records = records
	reply.NextStart = arguments.Start + uint64(len(records))
	return nil
}

// ---

// FindArguments - manuscript digest to look for
type FindArguments struct {
	Digest contentdigest.Digest `json:"digest"`
}

// FindReply - indices of all matching records
type FindReply struct {
	Indices []uint64 `json:"indices"`
}

// Find - records for a manuscript digest
func (l *Ledger) Find(arguments *FindArguments, reply *FindReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	reply.Indices = l.Ledger.Find(arguments.Digest)
	return nil
}
