// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// Classifier - scores the authorship of a text
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// Result - score in [0, 100] and its bucket label
type Result struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// the bucket labels
const (
	LabelHuman = "Human-written"
	LabelMixed = "Half written by AI"
	LabelAI    = "AI-generated"
)

// Buckets - score boundaries for the labels
type Buckets struct {
	HumanBelow float64 `json:"humanBelow"`
	MixedUpTo  float64 `json:"mixedUpTo"`
}

// DefaultBuckets - below 20 human, up to 50 mixed
var DefaultBuckets = Buckets{
	HumanBelow: 20,
	MixedUpTo:  50,
}

// Label - bucket name for a score
func (b Buckets) Label(score float64) string {
	switch {
	case score < b.HumanBelow:
		return LabelHuman
	case score <= b.MixedUpTo:
		return LabelMixed
	default:
		return LabelAI
	}
}

// Result - score clamped to [0, 100] with its label
func (b Buckets) Result(score float64) Result {
	if score < 0 || math.IsNaN(score) {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return Result{
		Score: score,
		Label: b.Label(score),
	}
}

// classifier kinds
const (
	KindHeuristic = "heuristic"
	KindRemote    = "remote"
	KindRandom    = "random"
)

// Configuration - classifier section of the configuration file
type Configuration struct {
	Kind           string  `gluamapper:"kind" json:"kind"`
	Endpoint       string  `gluamapper:"endpoint" json:"endpoint"`
	Token          string  `gluamapper:"token" json:"token"`
	TimeoutSeconds int     `gluamapper:"timeout_seconds" json:"timeout_seconds"`
	HumanBelow     float64 `gluamapper:"human_below" json:"human_below"`
	MixedUpTo      float64 `gluamapper:"mixed_up_to" json:"mixed_up_to"`
	Seed           int64   `gluamapper:"seed" json:"seed"`
}

// DefaultTimeout - applied when the configuration gives none
const DefaultTimeout = 30 * time.Second

// New - create the configured classifier wrapped with its timeout
func New(configuration *Configuration, log *logger.L) (Classifier, error) {

	buckets := DefaultBuckets
	if 0 != configuration.HumanBelow || 0 != configuration.MixedUpTo {
		buckets = Buckets{
			HumanBelow: configuration.HumanBelow,
			MixedUpTo:  configuration.MixedUpTo,
		}
	}
	if buckets.HumanBelow < 0 || buckets.MixedUpTo < buckets.HumanBelow || buckets.MixedUpTo > 100 {
		return nil, fault.InvalidClassifierBuckets
	}

	timeout := DefaultTimeout
	if configuration.TimeoutSeconds > 0 {
		timeout = time.Duration(configuration.TimeoutSeconds) * time.Second
	}

	var c Classifier
	switch configuration.Kind {
	case KindHeuristic, "":
		c = NewHeuristic(buckets)

	case KindRemote:
		if "" == configuration.Endpoint {
			return nil, fault.MissingParameters
		}
		c = NewRemote(configuration.Endpoint, configuration.Token, buckets, log)

	case KindRandom:
		seed := configuration.Seed
		if 0 == seed {
			seed = time.Now().UnixNano()
		}
		log.Warnf("random classifier in use: scores are not meaningful")
		c = NewRandom(rand.New(rand.NewSource(seed)), buckets)

	default:
		return nil, fault.InvalidClassifierKind
	}

	log.Infof("classifier: %s  buckets: %v  timeout: %s", configuration.Kind, buckets, timeout)

	return WithTimeout(c, timeout), nil
}
