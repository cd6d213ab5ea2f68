// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/manuscript-ledger/manuscriptd/command/manuscript-cli/rpccalls"
	"github.com/manuscript-ledger/manuscriptd/contentdigest"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := readText(m, c.String("file"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Submit(text)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runValidate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Validate()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	if !response.Valid {
		return fmt.Errorf("ledger is %s at index: %d  reason: %s", response.Status, response.Index, response.Reason)
	}
	return nil
}

func runRecord(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.IsSet("index") {
		return fmt.Errorf("missing index")
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Record(c.Uint64("index"))
	if nil != err {
		return err
	}

	printJson(m.w, response.Record)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(c.Uint64("start"), count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runFind(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	hexDigest := strings.TrimSpace(c.String("digest"))
	fileName := c.String("file")

	var digest contentdigest.Digest
	switch {
	case "" != hexDigest && "" != fileName:
		return fmt.Errorf("only one of digest or file is allowed")

	case "" != hexDigest:
		err := digest.UnmarshalText([]byte(hexDigest))
		if nil != err {
			return fmt.Errorf("invalid digest: %q  error: %s", hexDigest, err)
		}

	case "" != fileName:
		text, err := readText(m, fileName)
		if nil != err {
			return err
		}
		digest = contentdigest.FromText(text)

	default:
		return fmt.Errorf("missing digest or file")
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Find(digest)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDigest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := readText(m, c.String("file"))
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", contentdigest.FromText(text))
	return nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// read manuscript text from a file, blank or "-" is the reader
func readText(m *metadata, fileName string) (string, error) {
	var reader io.Reader
	if "" == fileName || "-" == fileName {
		reader = m.r
	} else {
		f, err := os.Open(fileName)
		if nil != err {
			return "", err
		}
		defer f.Close()
		reader = f
	}

	b, err := ioutil.ReadAll(reader)
	if nil != err {
		return "", err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "read: %d bytes\n", len(b))
	}
	return string(b), nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
