// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuscript-ledger/manuscriptd/classifier"
	"github.com/manuscript-ledger/manuscriptd/clock"
	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/fixtures"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/rpc/records"
	"github.com/manuscript-ledger/manuscriptd/similarity"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var texts = []string{"first text", "second text", "first text"}

func setup(t *testing.T) (*records.Ledger, *ledger.Ledger) {
	l := ledger.New()
	c := clock.NewStepping(time.Unix(1500000000, 0), time.Second)
	for _, text := range texts {
		_, err := l.Append(contentdigest.FromText(text), 10, classifier.LabelHuman, similarity.Verdict{}, c)
		require.Nil(t, err, "append")
	}
	return records.New(logger.New("test"), l), l
}

func TestValidate(t *testing.T) {
	r, _ := setup(t)

	var reply records.ValidateReply
	err := r.Validate(&records.ValidateArguments{}, &reply)
	assert.Nil(t, err, "validate")
	assert.Equal(t, records.ValidateReply{
		Valid:  true,
		Status: "Valid",
		Index:  0,
		Reason: "None",
		Height: 4,
	}, reply, "reply")
}

func TestRecord(t *testing.T) {
	r, l := setup(t)

	var reply records.RecordReply
	err := r.Record(&records.RecordArguments{Index: 2}, &reply)
	assert.Nil(t, err, "record")

	expected, _ := l.Get(2)
	assert.Equal(t, expected, reply.Record, "record")

	err = r.Record(&records.RecordArguments{Index: 4}, &reply)
	assert.Equal(t, fault.RecordNotFound, err, "beyond tail")
}

func TestList(t *testing.T) {
	r, l := setup(t)

	var reply records.ListReply
	err := r.List(&records.ListArguments{Start: 1, Count: 2}, &reply)
	assert.Nil(t, err, "list")
	assert.Equal(t, l.Range(1, 2), reply.Records, "records")
	assert.Equal(t, uint64(3), reply.NextStart, "next start")

	err = r.List(&records.ListArguments{Start: 3, Count: 10}, &reply)
	assert.Nil(t, err, "list tail")
	assert.Equal(t, 1, len(reply.Records), "tail records")
	assert.Equal(t, uint64(4), reply.NextStart, "next start at tail")

	err = r.List(&records.ListArguments{Start: 0, Count: records.MaximumList + 1}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "count too large")

	err = r.List(&records.ListArguments{Start: 0, Count: 0}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}

func TestFind(t *testing.T) {
	r, _ := setup(t)

	var reply records.FindReply
	err := r.Find(&records.FindArguments{Digest: contentdigest.FromText("first text")}, &reply)
	assert.Nil(t, err, "find")
	assert.Equal(t, []uint64{1, 3}, reply.Indices, "indices")

	err = r.Find(&records.FindArguments{Digest: contentdigest.FromText("unknown")}, &reply)
	assert.Nil(t, err, "find unknown")
	assert.Equal(t, []uint64{}, reply.Indices, "no indices")
}
