// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/contentdigest"
)

const manuscriptText = "The sky above the port was the color of television, tuned to a dead channel."

func run(t *testing.T, input string, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newApp(strings.NewReader(input), stdout, stderr)
	err := app.Run(append([]string{"manuscript-cli"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestDigestStdin(t *testing.T) {
	stdout, _, err := run(t, manuscriptText, "digest")
	assert.Nil(t, err, "digest")
	assert.Equal(t, contentdigest.FromText(manuscriptText).String()+"\n", stdout, "digest output")
}

func TestDigestFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "manuscript-cli")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "manuscript.txt")
	err = ioutil.WriteFile(fileName, []byte(manuscriptText), 0600)
	assert.Nil(t, err, "write file")

	stdout, stderr, err := run(t, "", "--verbose", "digest", "--file", fileName)
	assert.Nil(t, err, "digest")
	assert.Equal(t, contentdigest.FromText(manuscriptText).String()+"\n", stdout, "digest output")
	assert.Contains(t, stderr, "read: ", "verbose output")
}

func TestDigestMissingFile(t *testing.T) {
	_, _, err := run(t, "", "digest", "--file", "/no/such/manuscript.txt")
	assert.NotNil(t, err, "missing file")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	assert.Nil(t, err, "version")
	assert.Equal(t, version+"\n", stdout, "version output")
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"blank connect", []string{"--connect", "", "info"}},
		{"record without index", []string{"record"}},
		{"list zero count", []string{"list", "--count", "0"}},
		{"find without target", []string{"find"}},
		{"find with both", []string{"find", "--digest", "00", "--file", "x"}},
		{"find bad digest", []string{"find", "--digest", "xyz"}},
	}

	for _, test := range tests {
		_, _, err := run(t, "", test.args...)
		assert.NotNil(t, err, test.name)
	}
}
