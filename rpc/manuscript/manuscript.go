// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manuscript

import (
	"context"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/mode"
	"github.com/manuscript-ledger/manuscriptd/rpc/ratelimit"
	"github.com/manuscript-ledger/manuscriptd/submission"
)

const (
	rateLimitManuscript = 10
	rateBurstManuscript = 20
)

// Processor - turns manuscript text into a ledger record
type Processor interface {
	Process(ctx context.Context, text string) (ledger.Record, error)
}

// Manuscript - type for RPC calls
type Manuscript struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Processor Processor
	IsMode    func(mode.Mode) bool
}

// New - create manuscript RPC handler
func New(log *logger.L, processor Processor, isMode func(mode.Mode) bool) *Manuscript {
	return &Manuscript{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitManuscript, rateBurstManuscript),
		Processor: processor,
		IsMode:    isMode,
	}
}

// SubmitArguments - manuscript to be recorded
type SubmitArguments struct {
	Text string `json:"text"`
}

// SubmitReply - the appended record
type SubmitReply struct {
	Record     ledger.Record `json:"record"`
	Similarity string        `json:"similarity"`
}

// Submit - record a manuscript
//
// on failure the error text names the failed stage
func (m *Manuscript) Submit(arguments *SubmitArguments, reply *SubmitReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	if m.IsMode(mode.Halted) {
		return fault.LedgerHalted
	}
	if !m.IsMode(mode.Normal) {
		return fault.NotAvailable
	}

	if nil == arguments || len(arguments.Text) > submission.MaximumTextSize {
		return fault.TextTooLarge
	}

	m.Log.Infof("submit: %d bytes", len(arguments.Text))

	record, err := m.Processor.Process(context.Background(), arguments.Text)
	if nil != err {
		if stage, ok := submission.StageOf(err); ok {
			m.Log.Warnf("submit failed at stage: %s", stage)
		}
		return err
	}

	reply.Record = record
	reply.Similarity = record.Similarity.Summary()
	return nil
}
