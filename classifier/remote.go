// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/bitmark-inc/logger"
	"golang.org/x/net/context/ctxhttp"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// limit on the service response
const maximumResponseSize = 1 << 20

// the labels offered to the service
var candidateLabels = []string{LabelAI, LabelHuman}

// Remote - zero-shot classification service
//
// request:  {"inputs": text, "parameters": {"candidate_labels": [...]}}
// response: {"labels": [...], "scores": [...]}
//
// the score is 100 × the probability given to AI-generated
type Remote struct {
	endpoint string
	token    string
	client   *http.Client
	buckets  Buckets
	log      *logger.L
}

type remoteRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters remoteParameters `json:"parameters"`
}

type remoteParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type remoteResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// NewRemote - classifier calling endpoint, token is optional
func NewRemote(endpoint string, token string, buckets Buckets, log *logger.L) *Remote {
	return &Remote{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{},
		buckets:  buckets,
		log:      log,
	}
}

// Classify - one request per text
func (r *Remote) Classify(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(remoteRequest{
		Inputs: text,
		Parameters: remoteParameters{
			CandidateLabels: candidateLabels,
		},
	})
	if nil != err {
		return Result{}, err
	}

	request, err := http.NewRequest(http.MethodPost, r.endpoint, bytes.NewReader(body))
	if nil != err {
		return Result{}, err
	}
	request.Header.Set("Content-Type", "application/json")
	if "" != r.token {
		request.Header.Set("Authorization", "Bearer "+r.token)
	}

	response, err := ctxhttp.Do(ctx, r.client, request)
	if nil != err {
		if context.DeadlineExceeded == ctx.Err() {
			return Result{}, fault.ClassifierTimeout
		}
		r.log.Errorf("classifier request error: %s", err)
		return Result{}, fault.ClassifierUnavailable
	}
	defer response.Body.Close()

	if http.StatusOK != response.StatusCode {
		r.log.Errorf("classifier status: %s", response.Status)
		_, _ = io.Copy(ioutil.Discard, io.LimitReader(response.Body, maximumResponseSize))
		return Result{}, fault.ClassifierUnavailable
	}

	var reply remoteResponse
	err = json.NewDecoder(io.LimitReader(response.Body, maximumResponseSize)).Decode(&reply)
	if nil != err {
		r.log.Errorf("classifier response decode error: %s", err)
		return Result{}, fault.InvalidClassifierResponse
	}

	if len(reply.Labels) != len(reply.Scores) {
		return Result{}, fault.InvalidClassifierResponse
	}
	for i, label := range reply.Labels {
		if LabelAI == label {
			score := reply.Scores[i]
			if score < 0 || score > 1 {
				return Result{}, fault.InvalidClassifierResponse
			}
			return r.buckets.Result(100 * score), nil
		}
	}
	return Result{}, fault.InvalidClassifierResponse
}
