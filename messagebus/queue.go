// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/manuscript-ledger/manuscriptd/counter"
)

// DefaultQueueSize - queue length used by the daemon
const DefaultQueueSize = 1000

// Message - one queued item
type Message struct {
	From string
	Item interface{}
}

// Queue - bounded message queue
type Queue struct {
	queue   chan Message
	dropped counter.Counter
}

// New - queue holding up to size messages
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue data, false if the queue was full
func (q *Queue) Send(from string, item interface{}) bool {
	select {
	case q.queue <- Message{From: from, Item: item}:
		return true
	default:
		q.dropped.Increment()
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Dropped - number of messages discarded because the queue was full
func (q *Queue) Dropped() uint64 {
	return q.dropped.Uint64()
}
