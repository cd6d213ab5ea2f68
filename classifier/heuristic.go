// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// texts shorter than this are scored 0
const minimumHeuristicWords = 20

// Heuristic - stylometric estimate from sentence length uniformity
// and vocabulary repetition
type Heuristic struct {
	buckets Buckets
}

// NewHeuristic - deterministic local classifier
func NewHeuristic(buckets Buckets) *Heuristic {
	return &Heuristic{
		buckets: buckets,
	}
}

// Classify - never fails
func (h *Heuristic) Classify(ctx context.Context, text string) (Result, error) {
	return h.buckets.Result(heuristicScore(text)), nil
}

func heuristicScore(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && '\'' != r
	})
	if len(words) < minimumHeuristicWords {
		return 0
	}

	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[w] = struct{}{}
	}
	repetition := 1 - float64(len(distinct))/float64(len(words))

	lengths := sentenceLengths(text)
	uniformity := 0.0
	if len(lengths) > 1 {
		mean := 0.0
		for _, l := range lengths {
			mean += float64(l)
		}
		mean /= float64(len(lengths))

		variance := 0.0
		for _, l := range lengths {
			d := float64(l) - mean
			variance += d * d
		}
		variance /= float64(len(lengths))

		variation := math.Sqrt(variance) / mean
		uniformity = 1 - math.Min(variation, 1)
	}

	return 100 * (0.7*uniformity + 0.3*repetition)
}

// words per sentence, empty sentences skipped
func sentenceLengths(text string) []int {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return '.' == r || '!' == r || '?' == r
	})

	lengths := make([]int, 0, len(sentences))
	for _, s := range sentences {
		if n := len(strings.Fields(s)); n > 0 {
			lengths = append(lengths, n)
		}
	}
	return lengths
}
