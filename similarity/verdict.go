// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package similarity

import (
	"fmt"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// Decision - outcome of one evaluation
type Decision uint8

// all possible decisions
// the numeric values are part of the packed ledger record
const (
	NoPriorCorpus Decision = iota
	NoMatch
	Match
	maximumDecision
)

// Verdict - result of comparing one candidate against a corpus
//
// BestMatchID is empty only when there was no prior corpus
type Verdict struct {
	BestMatchID string   `json:"bestMatchId"`
	Score       float64  `json:"score"`
	Decision    Decision `json:"decision"`
}

// HasBestMatch - true if a corpus document was compared
func (v Verdict) HasBestMatch() bool {
	return NoPriorCorpus != v.Decision
}

// Summary - one line description of the verdict
func (v Verdict) Summary() string {
	switch v.Decision {
	case Match:
		return fmt.Sprintf("Plagiarism Detected (similarity: %.2f)", v.Score)
	case NoMatch:
		return "No Plagiarism"
	default:
		return "No Manuscripts Found"
	}
}

// IsValid - decision is one of the known values
func (d Decision) IsValid() bool {
	return d < maximumDecision
}

// String - decision name
func (d Decision) String() string {
	switch d {
	case NoPriorCorpus:
		return "NoPriorCorpus"
	case NoMatch:
		return "NoMatch"
	case Match:
		return "Match"
	default:
		return "*Unknown*"
	}
}

// MarshalText - decision as its name
func (d Decision) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fault.InvalidDecision
	}
	return []byte(d.String()), nil
}

// UnmarshalText - decision from its name
func (d *Decision) UnmarshalText(s []byte) error {
	switch string(s) {
	case "NoPriorCorpus":
		*d = NoPriorCorpus
	case "NoMatch":
		*d = NoMatch
	case "Match":
		*d = Match
	default:
		return fault.InvalidDecision
	}
	return nil
}
