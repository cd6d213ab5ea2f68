// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/manuscript-ledger/manuscriptd/rpc/certificate"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a manuscriptd
//
// the self-signed server certificate is accepted unless a SHA3-256
// fingerprint is given, then it must match
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err || 32 != len(expected) {
			return nil, fmt.Errorf("invalid fingerprint: %q", fingerprint)
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fmt.Errorf("server sent no certificate")
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fmt.Errorf("certificate fingerprint: %x  expected: %s", actual, fingerprint)
			}
			return nil
		}
	}

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}
	conn, err := tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the manuscriptd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

func (c *Client) printJson(title string, message interface{}) error {

	if !c.verbose {
		return nil
	}

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	if "" == title {
		fmt.Fprintf(c.handle, "%s\n", b)
	} else {
		fmt.Fprintf(c.handle, "%s:\n%s\n", title, b)
	}
	return nil
}
