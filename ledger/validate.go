// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
)

// Status - overall outcome of a validation
type Status uint8

// validation outcomes
const (
	Valid Status = iota
	Invalid
	Empty
)

// Reason - why a record failed
type Reason uint8

// failure reasons, None when valid
const (
	None Reason = iota
	IndexMismatch
	GenesisMismatch
	HashMismatch
	LinkMismatch
)

// ValidationResult - first failing record, if any
//
// Index is only meaningful when Status is Invalid
type ValidationResult struct {
	Status Status `json:"status"`
	Index  uint64 `json:"index"`
	Reason Reason `json:"reason"`
	Height uint64 `json:"height"`
}

// OK - true only for a valid chain
func (result ValidationResult) OK() bool {
	return Valid == result.Status
}

// String - human readable form
func (result ValidationResult) String() string {
	switch result.Status {
	case Valid:
		return fmt.Sprintf("valid: %d records", result.Height)
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("invalid at index: %d  reason: %s  height: %d", result.Index, result.Reason, result.Height)
	}
}

// ValidateRecords - check a sequence of records in index order
//
// per record: contiguous index, canonical genesis at 0, stored hash
// matches the recomputed hash, previous hash links to the record before
func ValidateRecords(records []Record) ValidationResult {

	height := uint64(len(records))
	if 0 == height {
		return ValidationResult{
			Status: Empty,
			Reason: None,
		}
	}

	invalid := func(index uint64, reason Reason) ValidationResult {
		return ValidationResult{
			Status: Invalid,
			Index:  index,
			Reason: reason,
			Height: height,
		}
	}

	for i, record := range records {
		index := uint64(i)

		if index != record.SequenceIndex {
			return invalid(index, IndexMismatch)
		}

		if 0 == index && !IsGenesis(record) {
			return invalid(index, GenesisMismatch)
		}

		if record.ComputeHash() != record.Hash {
			return invalid(index, HashMismatch)
		}

		if index > 0 && records[i-1].Hash != record.PreviousHash {
			return invalid(index, LinkMismatch)
		}
	}

	return ValidationResult{
		Status: Valid,
		Reason: None,
		Height: height,
	}
}

// String - status name
func (s Status) String() string {
	switch s {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	case Empty:
		return "Empty"
	default:
		return "*Unknown*"
	}
}

// MarshalText - status as its name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// String - reason name
func (r Reason) String() string {
	switch r {
	case None:
		return "None"
	case IndexMismatch:
		return "IndexMismatch"
	case GenesisMismatch:
		return "GenesisMismatch"
	case HashMismatch:
		return "HashMismatch"
	case LinkMismatch:
		return "LinkMismatch"
	default:
		return "*Unknown*"
	}
}

// MarshalText - reason as its name
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
