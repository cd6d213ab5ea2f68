// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// shorter runs are not terms
const minimumTermLength = 2

// termCounts - raw term frequencies of one document
type termCounts map[string]int

// split a document into its term frequencies
func tokenise(text string) termCounts {

	// a Caser keeps state so each call needs its own
	folded := cases.Fold().String(norm.NFKC.String(text))

	words := strings.FieldsFunc(folded, isSeparator)

	counts := make(termCounts, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minimumTermLength {
			continue
		}
		counts[w] += 1
	}
	return counts
}

func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsNumber(r) || '_' == r)
}
