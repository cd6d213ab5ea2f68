// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package similarity - near-duplicate detection of manuscripts
//
// A candidate is compared against every document of a corpus in a
// TF-IDF vector space built over the corpus plus the candidate:
//
//   tokenise  - NFKC, case fold, runs of letters/numbers/underscore, length >= 2
//   weigh     - raw term count * smoothed idf, then L2 normalisation
//   score     - cosine of the candidate against each corpus vector
//   best      - maximum score, ties go to the lowest identifier
//
// idf(t) = ln((1 + n) / (1 + df(t))) + 1 where n counts the candidate
//
// Vectors are kept as slices sorted by term so that every sum is taken
// in the same order; the result does not depend on map iteration order
// or on the number of workers.
package similarity
