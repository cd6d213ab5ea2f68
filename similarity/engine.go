// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package similarity

import (
	"runtime"
	"sort"
	"sync"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// DefaultThreshold - scores strictly above this are a Match
const DefaultThreshold = 0.7

// Configuration - similarity section of the configuration file
type Configuration struct {
	Threshold float64 `gluamapper:"threshold" json:"threshold"`
	Workers   int     `gluamapper:"workers" json:"workers"`
}

// DefaultConfiguration - threshold 0.7, one worker per CPU
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Threshold: DefaultThreshold,
		Workers:   runtime.NumCPU(),
	}
}

// Engine - stateless evaluator, safe for concurrent use
type Engine struct {
	threshold float64
	workers   int
}

// New - create an engine from a configuration
func New(configuration *Configuration) (*Engine, error) {
	if configuration.Threshold < 0 || configuration.Threshold > 1 {
		return nil, fault.InvalidThreshold
	}

	workers := configuration.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		threshold: configuration.Threshold,
		workers:   workers,
	}, nil
}

// Threshold - the configured match threshold
func (engine *Engine) Threshold() float64 {
	return engine.threshold
}

// Evaluate - compare a candidate with every document of a corpus
//
// the corpus must not be modified during the call
func (engine *Engine) Evaluate(candidate string, corpus map[string]string) Verdict {

	if 0 == len(corpus) {
		return Verdict{
			Decision: NoPriorCorpus,
		}
	}

	ids := make([]string, 0, len(corpus))
	for id := range corpus {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// candidate is the last document
	documents := make([]string, len(ids)+1)
	for i, id := range ids {
		documents[i] = corpus[id]
	}
	query := len(ids)
	documents[query] = candidate

	counts := make([]termCounts, len(documents))
	engine.parallel(len(documents), func(i int) {
		counts[i] = tokenise(documents[i])
	})

	idf := inverseDocumentFrequency(counts)

	vectors := make([]vector, len(documents))
	engine.parallel(len(documents), func(i int) {
		vectors[i] = weigh(counts[i], idf)
	})

	scores := make([]float64, len(ids))
	engine.parallel(len(ids), func(i int) {
		scores[i] = cosine(vectors[query], vectors[i])
	})

	// ids are sorted so strict > keeps the lowest id on a tie
	best := 0
	for i := 1; i < len(scores); i += 1 {
		if scores[i] > scores[best] {
			best = i
		}
	}

	verdict := Verdict{
		BestMatchID: ids[best],
		Score:       scores[best],
		Decision:    NoMatch,
	}
	if verdict.Score > engine.threshold {
		verdict.Decision = Match
	}
	return verdict
}

// run f(0) … f(n-1) spread over the workers
//
// each index is written by exactly one goroutine
func (engine *Engine) parallel(n int, f func(i int)) {
	workers := engine.workers
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		for i := 0; i < n; i += 1 {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w += 1 {
		go func(first int) {
			defer wg.Done()
			for i := first; i < n; i += workers {
				f(i)
			}
		}(w)
	}
	wg.Wait()
}
