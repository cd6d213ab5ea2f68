// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contentdigest - SHA-256 digests of manuscript text and of
// packed ledger records
//
// the hex form is the same byte order as sha256sum(1) output
package contentdigest
