// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contentdigest_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/contentdigest"
	"github.com/manuscript-ledger/manuscriptd/fault"
)

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		// printf '%s' 'hello world' | sha256sum
		{"hello world", "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		// printf '' | sha256sum
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for i, item := range tests {
		d := contentdigest.FromText(item.text)
		assert.Equal(t, item.expected, d.String(), "%d: wrong digest", i)
		assert.Equal(t, "<SHA-256:"+item.expected+">", fmt.Sprintf("%#v", d), "%d: wrong go string", i)
	}
}

func TestDeterministicAndDistinct(t *testing.T) {
	samples := []string{
		"The cat sat on the mat.",
		"The cat sat on the mat",
		"the cat sat on the mat.",
		"A completely different manuscript.",
		" ",
		"",
	}

	seen := make(map[contentdigest.Digest]string)
	for _, s := range samples {
		d1 := contentdigest.FromText(s)
		d2 := contentdigest.FromText(s)
		assert.Equal(t, d1, d2, "digest not deterministic for %q", s)

		if previous, ok := seen[d1]; ok {
			t.Errorf("collision: %q and %q", previous, s)
		}
		seen[d1] = s
	}
}

func TestScanFmt(t *testing.T) {
	stringDigest := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

	var d contentdigest.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}
	assert.Equal(t, contentdigest.FromText("hello world"), d, "wrong scanned digest")
}

func TestJSON(t *testing.T) {
	d := contentdigest.FromText("hello world")

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"`, string(buffer), "wrong JSON")

	var decoded contentdigest.Digest
	err = json.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, decoded, "round trip changed digest")
}

func TestDigestFromBytes(t *testing.T) {
	var d contentdigest.Digest
	err := contentdigest.DigestFromBytes(&d, []byte{1, 2, 3})
	assert.Equal(t, fault.InvalidDigestLength, err, "short buffer accepted")

	assert.True(t, contentdigest.Zero.IsZero(), "zero digest not zero")
	assert.False(t, contentdigest.FromText("").IsZero(), "digest of empty text is zero")
}
