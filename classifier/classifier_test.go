// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier_test

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuscript-ledger/manuscriptd/classifier"
	"github.com/manuscript-ledger/manuscriptd/fault"
)

func TestBuckets(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{0, classifier.LabelHuman},
		{19.99, classifier.LabelHuman},
		{20, classifier.LabelMixed},
		{35, classifier.LabelMixed},
		{50, classifier.LabelMixed},
		{50.01, classifier.LabelAI},
		{100, classifier.LabelAI},
	}

	for i, item := range tests {
		assert.Equal(t, item.label, classifier.DefaultBuckets.Label(item.score), "%d: score: %f", i, item.score)
	}

	custom := classifier.Buckets{HumanBelow: 40, MixedUpTo: 60}
	assert.Equal(t, classifier.LabelHuman, custom.Label(35), "custom human")
	assert.Equal(t, classifier.LabelMixed, custom.Label(60), "custom mixed")
	assert.Equal(t, classifier.LabelAI, custom.Label(61), "custom AI")
}

func TestBucketsResultClamps(t *testing.T) {
	r := classifier.DefaultBuckets.Result(-5)
	assert.Equal(t, classifier.Result{Score: 0, Label: classifier.LabelHuman}, r, "negative")

	r = classifier.DefaultBuckets.Result(150)
	assert.Equal(t, classifier.Result{Score: 100, Label: classifier.LabelAI}, r, "over 100")

	r = classifier.DefaultBuckets.Result(math.NaN())
	assert.Equal(t, classifier.Result{Score: 0, Label: classifier.LabelHuman}, r, "NaN")
}

func TestHeuristic(t *testing.T) {
	h := classifier.NewHeuristic(classifier.DefaultBuckets)

	short, err := h.Classify(context.Background(), "Too short to judge.")
	require.Nil(t, err, "classify short")
	assert.Equal(t, 0.0, short.Score, "short text score")
	assert.Equal(t, classifier.LabelHuman, short.Label, "short text label")

	uniform := strings.Repeat("The model writes the same kind of sentence again. ", 12)
	varied := "I woke late. The kettle, which my grandmother left me along with a box of " +
		"unlabelled photographs and a distrust of railways, refused to boil! Why? " +
		"Nobody knows. Outside, sparrows argued over crumbs while a delivery van " +
		"reversed slowly into the neighbour's hedge, its driver apologising to no one in particular."

	u, err := h.Classify(context.Background(), uniform)
	require.Nil(t, err, "classify uniform")
	v, err := h.Classify(context.Background(), varied)
	require.Nil(t, err, "classify varied")

	assert.True(t, u.Score > v.Score, "uniform: %f  varied: %f", u.Score, v.Score)
	assert.Equal(t, classifier.LabelAI, u.Label, "uniform label")
	for _, r := range []classifier.Result{u, v} {
		assert.True(t, r.Score >= 0 && r.Score <= 100, "score out of range: %f", r.Score)
	}

	again, _ := h.Classify(context.Background(), varied)
	assert.Equal(t, v, again, "not deterministic")
}

func TestRandom(t *testing.T) {
	a := classifier.NewRandom(rand.New(rand.NewSource(42)), classifier.DefaultBuckets)
	b := classifier.NewRandom(rand.New(rand.NewSource(42)), classifier.DefaultBuckets)

	for i := 0; i < 100; i += 1 {
		ra, err := a.Classify(context.Background(), "text")
		require.Nil(t, err, "classify a")
		rb, err := b.Classify(context.Background(), "other text")
		require.Nil(t, err, "classify b")

		assert.Equal(t, ra, rb, "%d: same seed differs", i)
		assert.True(t, ra.Score >= 0 && ra.Score < 100, "%d: score out of range: %f", i, ra.Score)
		assert.Equal(t, classifier.DefaultBuckets.Label(ra.Score), ra.Label, "%d: label", i)
	}
}

func TestNew(t *testing.T) {
	log := logger.New("test")

	c, err := classifier.New(&classifier.Configuration{Kind: classifier.KindHeuristic}, log)
	assert.Nil(t, err, "heuristic")
	assert.NotNil(t, c, "heuristic classifier")

	c, err = classifier.New(&classifier.Configuration{}, log)
	assert.Nil(t, err, "default kind")
	assert.NotNil(t, c, "default classifier")

	c, err = classifier.New(&classifier.Configuration{Kind: classifier.KindRandom, Seed: 7}, log)
	assert.Nil(t, err, "random")
	assert.NotNil(t, c, "random classifier")

	_, err = classifier.New(&classifier.Configuration{Kind: classifier.KindRemote}, log)
	assert.Equal(t, fault.MissingParameters, err, "remote without endpoint")

	_, err = classifier.New(&classifier.Configuration{Kind: "oracle"}, log)
	assert.Equal(t, fault.InvalidClassifierKind, err, "unknown kind")

	_, err = classifier.New(&classifier.Configuration{HumanBelow: 60, MixedUpTo: 50}, log)
	assert.Equal(t, fault.InvalidClassifierBuckets, err, "inverted buckets")
}

func TestNewCustomBuckets(t *testing.T) {
	c, err := classifier.New(&classifier.Configuration{Kind: classifier.KindHeuristic, HumanBelow: 101, MixedUpTo: 100}, logger.New("test"))
	assert.Equal(t, fault.InvalidClassifierBuckets, err, "human bucket above 100")
	assert.Nil(t, c, "classifier returned")

	c, err = classifier.New(&classifier.Configuration{Kind: classifier.KindHeuristic, HumanBelow: 100, MixedUpTo: 100}, logger.New("test"))
	require.Nil(t, err, "all human")

	r, err := c.Classify(context.Background(), strings.Repeat("Same words every time here. ", 10))
	require.Nil(t, err, "classify")
	assert.Equal(t, classifier.LabelHuman, r.Label, "custom buckets ignored")
}
