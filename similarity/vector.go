// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package similarity

import (
	"math"
	"sort"
)

// one non-zero component of a document vector
type component struct {
	term   string
	weight float64
}

// sparse document vector sorted by term
//
// a document without terms has an empty vector
type vector []component

// smoothed inverse document frequency over all documents
func inverseDocumentFrequency(documents []termCounts) map[string]float64 {
	frequency := make(map[string]int)
	for _, counts := range documents {
		for term := range counts {
			frequency[term] += 1
		}
	}

	n := float64(len(documents))
	idf := make(map[string]float64, len(frequency))
	for term, df := range frequency {
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}
	return idf
}

// tf-idf weights with unit length
func weigh(counts termCounts, idf map[string]float64) vector {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := make(vector, len(terms))
	sum := 0.0
	for i, term := range terms {
		w := float64(counts[term]) * idf[term]
		v[i] = component{term: term, weight: w}
		sum += w * w
	}
	if 0 == sum {
		return vector{}
	}

	length := math.Sqrt(sum)
	for i := range v {
		v[i].weight /= length
	}
	return v
}

// cosine of two unit vectors, 0 if either is empty
func cosine(a vector, b vector) float64 {
	dot := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			dot += a[i].weight * b[j].weight
			i += 1
			j += 1
		case a[i].term < b[j].term:
			i += 1
		default:
			j += 1
		}
	}

	// rounding can push identical vectors just past 1
	if dot > 1 {
		return 1
	}
	if dot < 0 {
		return 0
	}
	return dot
}
