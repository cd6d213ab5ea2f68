// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package classifier - authorship scoring of manuscript text
//
// A classifier returns a score in [0, 100], higher meaning more likely
// machine generated, and a label taken from the score buckets:
//
//   score <  HumanBelow           Human-written
//   score <= MixedUpTo            Half written by AI
//   otherwise                     AI-generated
//
// Implementations:
//
//   heuristic   deterministic stylometric estimate, no network
//   remote      zero-shot classification service over HTTP
//   random      uniform random score, for demonstrations only
package classifier
