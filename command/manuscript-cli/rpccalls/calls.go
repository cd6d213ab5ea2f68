// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/rpc/manuscript"
	"github.com/manuscript-ledger/manuscriptd/rpc/node"
	"github.com/manuscript-ledger/manuscriptd/rpc/records"
)

// Submit - send a manuscript to be recorded
func (c *Client) Submit(text string) (*manuscript.SubmitReply, error) {
	arguments := &manuscript.SubmitArguments{
		Text: text,
	}

	var reply manuscript.SubmitReply
	if err := c.client.Call("Manuscript.Submit", arguments, &reply); err != nil {
		return nil, err
	}

	c.printJson("Submit Reply", reply)

	return &reply, nil
}

// Validate - verify the whole chain on the server
func (c *Client) Validate() (*records.ValidateReply, error) {
	var reply records.ValidateReply
	if err := c.client.Call("Ledger.Validate", &records.ValidateArguments{}, &reply); err != nil {
		return nil, err
	}

	c.printJson("Validate Reply", reply)

	return &reply, nil
}

// Record - fetch one record by sequence index
func (c *Client) Record(index uint64) (*records.RecordReply, error) {
	arguments := &records.RecordArguments{
		Index: index,
	}

	var reply records.RecordReply
	if err := c.client.Call("Ledger.Record", arguments, &reply); err != nil {
		return nil, err
	}

	c.printJson("Record Reply", reply)

	return &reply, nil
}

// List - fetch a page of records
func (c *Client) List(start uint64, count int) (*records.ListReply, error) {
	arguments := &records.ListArguments{
		Start: start,
		Count: count,
	}

	c.printJson("List Request", arguments)

	var reply records.ListReply
	if err := c.client.Call("Ledger.List", arguments, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Find - indices of the records for a manuscript digest
func (c *Client) Find(digest contentdigest.Digest) (*records.FindReply, error) {
	arguments := &records.FindArguments{
		Digest: digest,
	}

	var reply records.FindReply
	if err := c.client.Call("Ledger.Find", arguments, &reply); err != nil {
		return nil, err
	}

	c.printJson("Find Reply", reply)

	return &reply, nil
}

// Info - request status from manuscriptd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.client.Call("Node.Info", &node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
