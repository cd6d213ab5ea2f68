// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contentdigest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// Length - number of bytes in the digest
const Length = sha256.Size

// Digest - type for a digest
type Digest [Length]byte

// Zero - the all-zero digest, used as the genesis link
var Zero Digest

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(sha256.Sum256(record))
}

// FromText - digest of the UTF-8 bytes of a manuscript
func FromText(text string) Digest {
	return NewDigest([]byte(text))
}

// IsZero - true for the all-zero sentinel
func (digest Digest) IsZero() bool {
	return digest == Zero
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	buffer := make([]byte, hex.DecodedLen(len(token)))
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	return DigestFromBytes(digest, buffer[:byteCount])
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	return DigestFromBytes(digest, buffer[:byteCount])
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.InvalidDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
