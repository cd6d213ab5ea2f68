// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier

import (
	"context"
	"math/rand"
	"sync"
)

// Random - uniform score in [0, 100) ignoring the text
type Random struct {
	sync.Mutex
	rng     *rand.Rand
	buckets Buckets
}

// NewRandom - classifier drawing from rng
func NewRandom(rng *rand.Rand, buckets Buckets) *Random {
	return &Random{
		rng:     rng,
		buckets: buckets,
	}
}

// Classify - never fails
func (r *Random) Classify(ctx context.Context, text string) (Result, error) {
	r.Lock()
	score := 100 * r.rng.Float64()
	r.Unlock()
	return r.buckets.Result(score), nil
}
