// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/similarity"
	"github.com/manuscript-ledger/manuscriptd/util"
)

// PackVersion - current record serialisation
const PackVersion = 1

// byte sizes for the fixed fields
const (
	versionSize    = 2
	indexSize      = 8
	secondsSize    = 8
	nanosSize      = 4
	timestampSize  = secondsSize + nanosSize
	digestSize     = contentdigest.Length
	scoreSize      = 8
	decisionSize   = 1
	similaritySize = 8
)

const nanosecondsPerSecond = 1000000000

// smallest possible packed record: both strings empty
const minimumPackedSize = versionSize + indexSize + timestampSize + digestSize +
	scoreSize + 1 + decisionSize + 1 + similaritySize + digestSize

// Record - one immutable entry of the ledger
type Record struct {
	SequenceIndex    uint64               `json:"index"`
	Timestamp        time.Time            `json:"timestamp"`
	ManuscriptDigest contentdigest.Digest `json:"manuscriptDigest"`
	AuthorshipScore  float64              `json:"authorshipScore"`
	AuthorshipLabel  string               `json:"authorshipLabel"`
	Similarity       similarity.Verdict   `json:"similarity"`
	PreviousHash     contentdigest.Digest `json:"previousHash"`
	Hash             contentdigest.Digest `json:"hash"`
}

// Packed - serialised record without its hash
type Packed []byte

// Pack - serialise every field except Hash
//
// layout, integers little endian:
//   version u16 | index u64 | unix seconds i64 | nanoseconds u32 | manuscript digest
//   | score f64 | varint len ++ label | decision u8 | varint len ++ best id
//   | similarity f64 | previous hash
func (record Record) Pack() Packed {
	buffer := make([]byte, 0, minimumPackedSize+len(record.AuthorshipLabel)+len(record.Similarity.BestMatchID)+16)

	buffer = appendUint16(buffer, PackVersion)
	buffer = appendUint64(buffer, record.SequenceIndex)
	buffer = appendUint64(buffer, uint64(record.Timestamp.Unix()))
	buffer = appendUint32(buffer, uint32(record.Timestamp.Nanosecond()))
	buffer = append(buffer, record.ManuscriptDigest[:]...)
	buffer = appendUint64(buffer, math.Float64bits(record.AuthorshipScore))
	buffer = appendString(buffer, record.AuthorshipLabel)
	buffer = append(buffer, byte(record.Similarity.Decision))
	buffer = appendString(buffer, record.Similarity.BestMatchID)
	buffer = appendUint64(buffer, math.Float64bits(record.Similarity.Score))
	buffer = append(buffer, record.PreviousHash[:]...)

	return buffer
}

// ComputeHash - SHA-256 of the packed record
func (record Record) ComputeHash() contentdigest.Digest {
	return contentdigest.NewDigest(record.Pack())
}

// Unpack - turn a byte slice into a record
//
// the Hash field of the result is not set
func (packed Packed) Unpack() (Record, error) {
	if len(packed) < minimumPackedSize {
		return Record{}, fault.TruncatedRecord
	}

	n := 0
	version := binary.LittleEndian.Uint16(packed[n:])
	n += versionSize
	if PackVersion != version {
		return Record{}, fault.InvalidPackVersion
	}

	record := Record{}

	record.SequenceIndex = binary.LittleEndian.Uint64(packed[n:])
	n += indexSize

	seconds := int64(binary.LittleEndian.Uint64(packed[n:]))
	n += secondsSize
	nanoseconds := binary.LittleEndian.Uint32(packed[n:])
	n += nanosSize
	if nanoseconds >= nanosecondsPerSecond {
		return Record{}, fault.InvalidTimestamp
	}
	record.Timestamp = time.Unix(seconds, int64(nanoseconds)).UTC()

	err := contentdigest.DigestFromBytes(&record.ManuscriptDigest, packed[n:n+digestSize])
	if nil != err {
		return Record{}, err
	}
	n += digestSize

	record.AuthorshipScore = math.Float64frombits(binary.LittleEndian.Uint64(packed[n:]))
	n += scoreSize

	label, labelSize, err := extractString(packed[n:])
	if nil != err {
		return Record{}, err
	}
	record.AuthorshipLabel = label
	n += labelSize

	if n+decisionSize > len(packed) {
		return Record{}, fault.TruncatedRecord
	}
	record.Similarity.Decision = similarity.Decision(packed[n])
	if !record.Similarity.Decision.IsValid() {
		return Record{}, fault.InvalidDecision
	}
	n += decisionSize

	bestMatch, bestMatchSize, err := extractString(packed[n:])
	if nil != err {
		return Record{}, err
	}
	record.Similarity.BestMatchID = bestMatch
	n += bestMatchSize

	if n+similaritySize+digestSize != len(packed) {
		return Record{}, fault.InvalidRecordLength
	}

	record.Similarity.Score = math.Float64frombits(binary.LittleEndian.Uint64(packed[n:]))
	n += similaritySize

	err = contentdigest.DigestFromBytes(&record.PreviousHash, packed[n:])
	if nil != err {
		return Record{}, err
	}

	return record, nil
}

// StoredValue - packed record followed by its hash
func (record Record) StoredValue() []byte {
	return append(record.Pack(), record.Hash[:]...)
}

// RecordFromStoredValue - split a stored value into record and hash
//
// the stored hash is kept as is so that validation can detect a mismatch
func RecordFromStoredValue(value []byte) (Record, error) {
	if len(value) < minimumPackedSize+digestSize {
		return Record{}, fault.TruncatedRecord
	}
	split := len(value) - digestSize

	record, err := Packed(value[:split]).Unpack()
	if nil != err {
		return Record{}, err
	}

	err = contentdigest.DigestFromBytes(&record.Hash, value[split:])
	if nil != err {
		return Record{}, err
	}
	return record, nil
}

func appendUint16(buffer []byte, value uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, value)
	return append(buffer, b...)
}

func appendUint32(buffer []byte, value uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, value)
	return append(buffer, b...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, value)
	return append(buffer, b...)
}

func appendString(buffer []byte, s string) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(s)))...)
	return append(buffer, s...)
}

// returns the string and the total bytes used
func extractString(buffer []byte) (string, int, error) {
	if 0 == len(buffer) {
		return "", 0, fault.TruncatedRecord
	}
	length, n := util.ClippedVarint64(buffer, 0, len(buffer))
	if 0 == n || n+length > len(buffer) {
		return "", 0, fault.TruncatedRecord
	}
	return string(buffer[n : n+length]), n + length, nil
}
