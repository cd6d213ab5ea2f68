// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manuscript_test

import (
	"context"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/fixtures"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/mode"
	"github.com/manuscript-ledger/manuscriptd/rpc/manuscript"
	"github.com/manuscript-ledger/manuscriptd/similarity"
	"github.com/manuscript-ledger/manuscriptd/submission"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type processor struct {
	calls  int
	record ledger.Record
	err    error
}

func (p *processor) Process(ctx context.Context, text string) (ledger.Record, error) {
	p.calls += 1
	return p.record, p.err
}

func isMode(current mode.Mode) func(mode.Mode) bool {
	return func(m mode.Mode) bool {
		return m == current
	}
}

func TestSubmit(t *testing.T) {
	record := ledger.Record{
		SequenceIndex: 1,
		Similarity: similarity.Verdict{
			BestMatchID: "doc1",
			Score:       1,
			Decision:    similarity.Match,
		},
	}
	p := &processor{record: record}
	m := manuscript.New(logger.New("test"), p, isMode(mode.Normal))

	var reply manuscript.SubmitReply
	err := m.Submit(&manuscript.SubmitArguments{Text: "some text"}, &reply)
	assert.Nil(t, err, "submit")
	assert.Equal(t, record, reply.Record, "record")
	assert.Equal(t, "Plagiarism Detected (similarity: 1.00)", reply.Similarity, "summary")
	assert.Equal(t, 1, p.calls, "process calls")
}

func TestSubmitRefusedByMode(t *testing.T) {
	p := &processor{}

	var reply manuscript.SubmitReply
	m := manuscript.New(logger.New("test"), p, isMode(mode.Halted))
	err := m.Submit(&manuscript.SubmitArguments{Text: "x"}, &reply)
	assert.Equal(t, fault.LedgerHalted, err, "halted")

	m = manuscript.New(logger.New("test"), p, isMode(mode.Verifying))
	err = m.Submit(&manuscript.SubmitArguments{Text: "x"}, &reply)
	assert.Equal(t, fault.NotAvailable, err, "verifying")

	assert.Equal(t, 0, p.calls, "processed while refused")
}

func TestSubmitTooLarge(t *testing.T) {
	p := &processor{}
	m := manuscript.New(logger.New("test"), p, isMode(mode.Normal))

	var reply manuscript.SubmitReply
	err := m.Submit(&manuscript.SubmitArguments{Text: strings.Repeat("a", submission.MaximumTextSize+1)}, &reply)
	assert.Equal(t, fault.TextTooLarge, err, "too large")
	assert.Equal(t, 0, p.calls, "processed")
}

func TestSubmitFailureStage(t *testing.T) {
	p := &processor{
		err: &submission.StageError{Stage: submission.StageClassify, Err: fault.ClassifierTimeout},
	}
	m := manuscript.New(logger.New("test"), p, isMode(mode.Normal))

	server := rpc.NewServer()
	err := server.Register(m)
	assert.Nil(t, err, "register")

	serverConn, clientConn := net.Pipe()
	go server.ServeCodec(jsonrpc.NewServerCodec(serverConn))
	client := jsonrpc.NewClient(clientConn)
	defer client.Close()

	var reply manuscript.SubmitReply
	err = client.Call("Manuscript.Submit", &manuscript.SubmitArguments{Text: "text"}, &reply)
	assert.NotNil(t, err, "failure hidden")
	assert.Equal(t, "submission failed at classify: classifier timed out", err.Error(), "error text")
	assert.Equal(t, manuscript.SubmitReply{}, reply, "reply on failure")
	assert.Equal(t, 1, p.calls, "process calls")
}
