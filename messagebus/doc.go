// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queue of internally generated events
// for background consumers such as the publisher
//
// Sending never blocks: when the queue is full the message is dropped
// and counted so that a slow consumer cannot stall ledger appends.
package messagebus
