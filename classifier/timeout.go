// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier

import (
	"context"
	"time"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

type timeoutClassifier struct {
	classifier Classifier
	timeout    time.Duration
}

type classification struct {
	result Result
	err    error
}

// WithTimeout - fail with fault.ClassifierTimeout after d
//
// the inner call is abandoned, not interrupted, if it ignores ctx
func WithTimeout(c Classifier, d time.Duration) Classifier {
	return &timeoutClassifier{
		classifier: c,
		timeout:    d,
	}
}

func (t *timeoutClassifier) Classify(ctx context.Context, text string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan classification, 1)
	go func() {
		result, err := t.classifier.Classify(ctx, text)
		done <- classification{result: result, err: err}
	}()

	select {
	case c := <-done:
		if nil != c.err && nil != ctx.Err() {
			return Result{}, contextError(ctx)
		}
		return c.result, c.err
	case <-ctx.Done():
		return Result{}, contextError(ctx)
	}
}

func contextError(ctx context.Context) error {
	if context.DeadlineExceeded == ctx.Err() {
		return fault.ClassifierTimeout
	}
	return ctx.Err()
}
