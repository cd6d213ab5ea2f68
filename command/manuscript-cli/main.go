// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
	r           io.Reader
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(r io.Reader, w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "manuscript-cli"
	app.Usage = "submit manuscripts to and query a manuscriptd ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " manuscriptd host/IP and port, `HOST:PORT`",
			EnvVar: "MANUSCRIPTD_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " required SHA3-256 RPC certificate `HEX` fingerprint",
			EnvVar: "MANUSCRIPTD_FINGERPRINT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "submit",
			Usage:     "record a manuscript, read from a file or stdin",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " `FILE` of manuscript text, - or blank for stdin",
				},
			},
			Action: runSubmit,
		},
		{
			Name:   "validate",
			Usage:  "verify the whole ledger on the server",
			Action: runValidate,
		},
		{
			Name:      "record",
			Usage:     "display one ledger record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "index, i",
					Value: 0,
					Usage: "*sequence `NUMBER` of the record",
				},
			},
			Action: runRecord,
		},
		{
			Name:      "list",
			Usage:     "list ledger records",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start point `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "find",
			Usage:     "find the records of a manuscript",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "digest, d",
					Value: "",
					Usage: "+manuscript SHA-256 `HEX` digest",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+`FILE` of manuscript text to digest locally",
				},
			},
			Action: runFind,
		},
		{
			Name:  "digest",
			Usage: "display the digest of a manuscript, read from a file or stdin",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " `FILE` of manuscript text, - or blank for stdin",
				},
			},
			Action: runDigest,
		},
		{
			Name:   "info",
			Usage:  "display manuscriptd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display manuscript-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		verbose := c.GlobalBool("verbose")
		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("connect: cannot be blank")
		}

		if verbose {
			fmt.Fprintf(c.App.ErrWriter, "connect: %q\n", connect)
		}

		c.App.Metadata["config"] = &metadata{
			connect:     connect,
			fingerprint: c.GlobalString("fingerprint"),
			verbose:     verbose,
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
			r:           r,
		}
		return nil
	}

	return app
}
