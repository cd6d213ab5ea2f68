// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuscript-ledger/manuscriptd/chain"
	"github.com/manuscript-ledger/manuscriptd/classifier"
	"github.com/manuscript-ledger/manuscriptd/corpus"
)

func writeConfiguration(t *testing.T, text string) (string, string) {
	dir, err := ioutil.TempDir("", "manuscriptd-conf")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "manuscriptd.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return dir, fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "testing"
M.client_rpc = {
    listen = { "127.0.0.1:2130" },
}
return M
`)
	defer os.RemoveAll(dir)

	options, err := getConfiguration(fileName)
	assert.Nil(t, err, "getConfiguration")

	assert.Equal(t, filepath.Clean(dir), options.DataDirectory, "data directory")
	assert.Equal(t, chain.Testing, options.Chain, "chain")
	assert.Equal(t, filepath.Join(dir, "data", chain.Testing), options.Database.Name, "database name")
	assert.Equal(t, filepath.Join(dir, "corpus"), options.Corpus.Directory, "corpus directory")
	assert.Equal(t, corpus.DefaultExtension, options.Corpus.Extension, "corpus extension")
	assert.Equal(t, classifier.KindHeuristic, options.Classifier.Kind, "classifier kind")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), options.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, "rpc.key"), options.ClientRPC.PrivateKey, "private key")
	assert.Equal(t, uint64(defaultRPCClients), options.ClientRPC.MaximumConnections, "maximum connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, options.ClientRPC.Listen, "listen")
	assert.False(t, options.Publishing.Enabled, "publishing enabled")
	assert.Equal(t, "", options.Publishing.PrivateKey, "blank publish key stays blank")

	for _, d := range []string{"data", "corpus", "log"} {
		info, err := os.Stat(filepath.Join(dir, d))
		assert.Nil(t, err, "stat: %s", d)
		assert.True(t, info.IsDir(), "directory: %s", d)
	}
}

func TestGetConfigurationSections(t *testing.T) {
	dir, fileName := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "LOCAL"
M.database = { name = "records" }
M.similarity = { threshold = 0.5, workers = 2 }
M.classifier = { kind = "random", seed = 42 }
M.publishing = {
    enabled = true,
    broadcast = { "127.0.0.1:2135" },
    private_key = "publish.private",
    public_key = "publish.public",
}
M.logging = { levels = { DEFAULT = "debug" } }
return M
`)
	defer os.RemoveAll(dir)

	options, err := getConfiguration(fileName)
	assert.Nil(t, err, "getConfiguration")

	assert.Equal(t, chain.Local, options.Chain, "chain")
	assert.Equal(t, filepath.Join(dir, "data", "records"), options.Database.Name, "database name")
	assert.Equal(t, 0.5, options.Similarity.Threshold, "threshold")
	assert.Equal(t, 2, options.Similarity.Workers, "workers")
	assert.Equal(t, classifier.KindRandom, options.Classifier.Kind, "classifier kind")
	assert.Equal(t, int64(42), options.Classifier.Seed, "seed")
	assert.True(t, options.Publishing.Enabled, "publishing enabled")
	assert.Equal(t, []string{"127.0.0.1:2135"}, options.Publishing.Broadcast, "broadcast")
	assert.Equal(t, filepath.Join(dir, "publish.private"), options.Publishing.PrivateKey, "private key")
	assert.Equal(t, filepath.Join(dir, "publish.public"), options.Publishing.PublicKey, "public key")
	assert.Equal(t, "debug", options.Logging.Levels["DEFAULT"], "log level")
}

func TestGetConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown chain", `return { data_directory = ".", chain = "moon" }`},
		{"missing data directory", `return { chain = "local" }`},
		{"random on live", `return { data_directory = ".", chain = "live", classifier = { kind = "random" } }`},
		{"database path", `return { data_directory = ".", chain = "local", database = { name = "a/b" } }`},
		{"not a table", `return 42`},
	}

	for _, test := range tests {
		dir, fileName := writeConfiguration(t, test.text)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, test.name)
		os.RemoveAll(dir)
	}
}
