// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuscript-ledger/manuscriptd/classifier"
	classifiermocks "github.com/manuscript-ledger/manuscriptd/classifier/mocks"
	"github.com/manuscript-ledger/manuscriptd/corpus"
	corpusmocks "github.com/manuscript-ledger/manuscriptd/corpus/mocks"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/similarity"
	"github.com/manuscript-ledger/manuscriptd/submission"
)

func TestServiceArchivesAndMatches(t *testing.T) {
	directory, err := ioutil.TempDir("", "submission-test")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(directory)

	d := corpus.NewDirectory(&corpus.Configuration{Directory: directory}, logger.New("corpus"))

	l := ledger.New()
	service := submission.NewService(
		logger.New("submission"),
		newPipeline(t, l, nil),
		d,
		d,
		classifier.NewHeuristic(classifier.DefaultBuckets),
		fixedClock(),
	)

	first, err := service.Process(context.Background(), manuscript)
	assert.Nil(t, err, "first process")
	assert.Equal(t, similarity.NoPriorCorpus, first.Similarity.Decision, "first decision")

	archived := filepath.Join(directory, first.ManuscriptDigest.String()+".txt")
	data, err := ioutil.ReadFile(archived)
	assert.Nil(t, err, "archived file")
	assert.Equal(t, manuscript, string(data), "archived text")

	second, err := service.Process(context.Background(), manuscript)
	assert.Nil(t, err, "second process")
	assert.Equal(t, similarity.Match, second.Similarity.Decision, "second decision")
	assert.Equal(t, first.ManuscriptDigest.String()+".txt", second.Similarity.BestMatchID, "best match")
	assert.Equal(t, first.Hash, second.PreviousHash, "link")

	assert.Equal(t, uint64(3), l.Height(), "height")
	assert.True(t, l.Validate().OK(), "chain invalid")
}

func TestServiceCorpusUnavailable(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := corpusmocks.NewMockSource(ctl)
	source.EXPECT().Snapshot().Return(nil, fault.CorpusUnavailable)

	c := classifiermocks.NewMockClassifier(ctl)

	l := ledger.New()
	p := newPipeline(t, l, nil)
	service := submission.NewService(logger.New("submission"), p, source, nil, c, fixedClock())

	_, err := service.Process(context.Background(), manuscript)
	stage, _ := submission.StageOf(err)
	assert.Equal(t, submission.StageCorpus, stage, "stage")
	assert.True(t, errors.Is(err, fault.CorpusUnavailable), "cause: %v", err)
	assert.Equal(t, uint64(1), l.Height(), "height changed")
	assert.Equal(t, uint64(1), p.Failures(), "failure count")
}

func TestServiceArchiveFailureKeepsRecord(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := corpusmocks.NewMockSource(ctl)
	source.EXPECT().Snapshot().Return(corpus.Snapshot{}, nil)

	archiver := corpusmocks.NewMockArchiver(ctl)
	archiver.EXPECT().
		Archive(gomock.Any(), manuscript).
		Return(errors.New("disk full"))

	c := classifiermocks.NewMockClassifier(ctl)
	c.EXPECT().
		Classify(gomock.Any(), manuscript).
		Return(classifier.Result{Score: 0, Label: classifier.LabelHuman}, nil)

	l := ledger.New()
	service := submission.NewService(logger.New("submission"), newPipeline(t, l, nil), source, archiver, c, fixedClock())

	record, err := service.Process(context.Background(), manuscript)
	assert.Nil(t, err, "archive failure returned")
	assert.Equal(t, uint64(1), record.SequenceIndex, "index")
	assert.Equal(t, uint64(2), l.Height(), "height")
}
