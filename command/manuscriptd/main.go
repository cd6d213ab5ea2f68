// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/manuscript-ledger/manuscriptd/background"
	"github.com/manuscript-ledger/manuscriptd/classifier"
	"github.com/manuscript-ledger/manuscriptd/clock"
	"github.com/manuscript-ledger/manuscriptd/corpus"
	"github.com/manuscript-ledger/manuscriptd/ledger"
	"github.com/manuscript-ledger/manuscriptd/messagebus"
	"github.com/manuscript-ledger/manuscriptd/mode"
	"github.com/manuscript-ledger/manuscriptd/publish"
	"github.com/manuscript-ledger/manuscriptd/rpc"
	"github.com/manuscript-ledger/manuscriptd/rpc/server"
	"github.com/manuscript-ledger/manuscriptd/similarity"
	"github.com/manuscript-ledger/manuscriptd/storage"
	"github.com/manuscript-ledger/manuscriptd/submission"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database.Name)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	database, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer database.Close()

	// load the chain of records
	log.Info("initialise ledger")
	theLedger, err := ledger.Open(ledger.NewPoolStore(database.Pool.Records))
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	log.Infof("ledger height: %d", theLedger.Height())

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theLedger) {
		return
	}

	// no submissions are accepted until the stored chain is verified
	result := theLedger.Validate()
	if result.OK() {
		log.Infof("ledger: %s", result)
		mode.Set(mode.Normal)
	} else {
		log.Criticalf("ledger: %s", result)
		mode.Set(mode.Halted)
	}

	engine, err := similarity.New(&theConfiguration.Similarity)
	if nil != err {
		log.Criticalf("similarity initialise error: %s", err)
		exitwithstatus.Message("similarity initialise error: %s", err)
	}

	theClassifier, err := classifier.New(&theConfiguration.Classifier, logger.New("classifier"))
	if nil != err {
		log.Criticalf("classifier initialise error: %s", err)
		exitwithstatus.Message("classifier initialise error: %s", err)
	}

	processes := background.Processes{}

	directory := corpus.NewDirectory(&theConfiguration.Corpus, logger.New("corpus"))
	var archiver corpus.Archiver
	if theConfiguration.Corpus.Archive {
		archiver = directory
	}
	if theConfiguration.Corpus.Watch {
		watcher, err := corpus.NewWatcher(directory, logger.New("watcher"))
		if nil != err {
			log.Criticalf("corpus watcher initialise error: %s", err)
			exitwithstatus.Message("corpus watcher initialise error: %s", err)
		}
		processes = append(processes, watcher)
	}

	// start up the publishing background process
	var notifier submission.Notifier
	if theConfiguration.Publishing.Enabled {
		queue := messagebus.New(messagebus.DefaultQueueSize)
		publisher, err := publish.New(&theConfiguration.Publishing.Configuration, theConfiguration.Chain, queue, logger.New("publish"))
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		processes = append(processes, publisher)
		notifier = queue
	}

	pipeline := submission.New(logger.New("submission"), theLedger, engine, notifier)
	service := submission.NewService(logger.New("service"), pipeline, directory, archiver, theClassifier, clock.System{})

	bg := background.Start(processes, nil)
	defer bg.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, server.Handles{Ledger: theLedger, Service: service}, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
