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
	"github.com/manuscript-ledger/manuscriptd/corpus"
	"github.com/manuscript-ledger/manuscriptd/ledger"
)

// Service - a pipeline bound to its collaborators
type Service struct {
	log        *logger.L
	pipeline   *Pipeline
	source     corpus.Source
	archiver   corpus.Archiver
	classifier classifier.Classifier
	clock      clock.Clock
}

// NewService - bind a pipeline, archiver may be nil
func NewService(log *logger.L, pipeline *Pipeline, source corpus.Source, archiver corpus.Archiver, c classifier.Classifier, clk clock.Clock) *Service {
	return &Service{
		log:        log,
		pipeline:   pipeline,
		source:     source,
		archiver:   archiver,
		classifier: c,
		clock:      clk,
	}
}

// Pipeline - the underlying pipeline
func (s *Service) Pipeline() *Pipeline {
	return s.pipeline
}

// Process - snapshot the corpus, submit, then archive the manuscript
//
// an archive failure is logged: the record is already committed
func (s *Service) Process(ctx context.Context, text string) (ledger.Record, error) {
	snapshot, err := s.source.Snapshot()
	if nil != err {
		s.pipeline.failures.Increment()
		s.log.Errorf("corpus snapshot error: %s", err)
		return ledger.Record{}, fail(StageCorpus, err)
	}

	record, err := s.pipeline.Submit(ctx, text, snapshot, s.classifier, s.clock)
	if nil != err {
		return ledger.Record{}, err
	}

	if nil != s.archiver {
		id := record.ManuscriptDigest.String()
		err := s.archiver.Archive(id, text)
		if nil != err {
			s.log.Errorf("archive: %s  error: %s", id, err)
		}
	}

	return record, nil
}
