// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/manuscript-ledger/manuscriptd/classifier"
	"github.com/manuscript-ledger/manuscriptd/clock"
	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/corpus"
	"github.com/manuscript-ledger/manuscriptd/counter"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/similarity"
)

// MaximumTextSize - largest manuscript accepted, in bytes
const MaximumTextSize = 16 * 1024 * 1024

// message bus item kind for appended records
const notifyRecord = "record"

// Notifier - receives every appended record
type Notifier interface {
	Send(from string, item interface{}) bool
}

// Pipeline - runs the submission stages against one ledger
type Pipeline struct {
	log      *logger.L
	ledger   *ledger.Ledger
	engine   *similarity.Engine
	notifier Notifier

	submissions counter.Counter
	failures    counter.Counter
}

// New - create a pipeline, notifier may be nil
func New(log *logger.L, l *ledger.Ledger, engine *similarity.Engine, notifier Notifier) *Pipeline {
	return &Pipeline{
		log:      log,
		ledger:   l,
		engine:   engine,
		notifier: notifier,
	}
}

// Submit - process one manuscript against a corpus snapshot
//
// returns the appended record, or a *StageError with nothing appended
func (p *Pipeline) Submit(ctx context.Context, text string, snapshot corpus.Snapshot, c classifier.Classifier, clk clock.Clock) (ledger.Record, error) {
	record, err := p.submit(ctx, text, snapshot, c, clk)
	if nil != err {
		p.failures.Increment()
		p.log.Warnf("%s", err)
		return ledger.Record{}, err
	}

	p.submissions.Increment()
	p.log.Infof("appended: %d  digest: %s  authorship: %s  similarity: %s",
		record.SequenceIndex, record.ManuscriptDigest, record.AuthorshipLabel, record.Similarity.Summary())

	if nil != p.notifier && !p.notifier.Send(notifyRecord, record) {
		p.log.Warnf("notify queue full, record: %d not published", record.SequenceIndex)
	}

	return record, nil
}

func (p *Pipeline) submit(ctx context.Context, text string, snapshot corpus.Snapshot, c classifier.Classifier, clk clock.Clock) (ledger.Record, error) {
	if len(text) > MaximumTextSize {
		return ledger.Record{}, fail(StageDigest, fault.TextTooLarge)
	}
	digest := contentdigest.FromText(text)
	p.log.Debugf("digest: %s", digest)

	result, err := c.Classify(ctx, text)
	if nil != err {
		return ledger.Record{}, fail(StageClassify, err)
	}
	p.log.Debugf("classify: %s  score: %.2f  label: %s", digest, result.Score, result.Label)

	if err := ctx.Err(); nil != err {
		return ledger.Record{}, fail(StageSimilarity, err)
	}
	verdict := p.engine.Evaluate(text, snapshot)
	p.log.Debugf("similarity: %s  best: %q  score: %.4f", digest, verdict.BestMatchID, verdict.Score)

	if err := ctx.Err(); nil != err {
		return ledger.Record{}, fail(StageAppend, err)
	}
	record, err := p.ledger.Append(digest, result.Score, result.Label, verdict, clk)
	if nil != err {
		return ledger.Record{}, fail(StageAppend, err)
	}
	return record, nil
}

// Ledger - the ledger records are appended to
func (p *Pipeline) Ledger() *ledger.Ledger {
	return p.ledger
}

// Submissions - number of records appended
func (p *Pipeline) Submissions() uint64 {
	return p.submissions.Uint64()
}

// Failures - number of submissions that appended nothing
func (p *Pipeline) Failures() uint64 {
	return p.failures.Uint64()
}
