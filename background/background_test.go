// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/background"
)

type ticker struct {
	count    int64
	finished int64
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int64)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		atomic.AddInt64(&state.count, step)
		time.Sleep(time.Millisecond)
	}

	atomic.StoreInt64(&state.finished, 1)
}

func TestBackground(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, int64(9))
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, proc := range []*ticker{proc1, proc2} {
		assert.Equal(t, int64(1), atomic.LoadInt64(&proc.finished), "%d: not finished", i)
		assert.True(t, atomic.LoadInt64(&proc.count) > 0, "%d: never ran", i)
		assert.Equal(t, int64(0), atomic.LoadInt64(&proc.count)%9, "%d: wrong argument", i)
	}

	// counts are frozen after stop
	before := atomic.LoadInt64(&proc1.count)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt64(&proc1.count), "still running")

	p.Stop()
}

func TestBackgroundEmpty(t *testing.T) {
	p := background.Start(background.Processes{}, nil)
	p.Stop()
}
