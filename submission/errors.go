// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"errors"
	"fmt"
)

// Stage - step of a submission
type Stage string

// all stages in processing order
const (
	StageDigest     Stage = "digest"
	StageCorpus     Stage = "corpus"
	StageClassify   Stage = "classify"
	StageSimilarity Stage = "similarity"
	StageAppend     Stage = "append"
)

// StageError - a submission failed and appended nothing
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("submission failed at %s: %s", e.Stage, e.Err)
}

// Unwrap - the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf - the failed stage of a submission error
func StageOf(err error) (Stage, bool) {
	var stageError *StageError
	if errors.As(err, &stageError) {
		return stageError.Stage, true
	}
	return "", false
}

func fail(stage Stage, err error) error {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}
