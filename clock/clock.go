// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package clock - source of ledger timestamps
package clock

import (
	"sync"
	"time"
)

// Clock - anything that can tell the time
type Clock interface {
	Now() time.Time
}

// System - the wall clock in UTC
type System struct{}

// Now - current UTC time without a monotonic reading
func (System) Now() time.Time {
	return time.Now().UTC().Round(0)
}

// Fixed - a clock for tests, returns a settable instant
type Fixed struct {
	sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFixed - clock stopped at t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{
		now: t.UTC(),
	}
}

// NewStepping - clock starting at t that advances by step after each reading
func NewStepping(t time.Time, step time.Duration) *Fixed {
	return &Fixed{
		now:  t.UTC(),
		step: step,
	}
}

// Now - the current setting
func (f *Fixed) Now() time.Time {
	f.Lock()
	defer f.Unlock()
	t := f.now
	f.now = f.now.Add(f.step)
	return t
}

// Set - move the clock to t
func (f *Fixed) Set(t time.Time) {
	f.Lock()
	f.now = t.UTC()
	f.Unlock()
}
