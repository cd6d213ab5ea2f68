// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast newly appended ledger records
// on ZeroMQ PUB sockets
//
// each message has three frames: chain name, item kind and the JSON
// encoded item
package publish

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/manuscript-ledger/manuscriptd/counter"
	"github.com/manuscript-ledger/manuscriptd/fault"
	"github.com/manuscript-ledger/manuscriptd/messagebus"
	"github.com/manuscript-ledger/manuscriptd/zmqutil"
)

const (
	publisherZapDomain = "publisher"
)

// Configuration - a block of configuration data
// this is read from the Lua configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Publisher - background process sending queued items to subscribers
type Publisher struct {
	log     *logger.L
	chain   string
	queue   <-chan messagebus.Message
	socket4 *zmq.Socket
	socket6 *zmq.Socket
	sent    counter.Counter
	failed  counter.Counter
}

// New - bind the broadcast sockets
// key files are optional, without them the sockets are not encrypted
func New(configuration *Configuration, chainName string, queue *messagebus.Queue, log *logger.L) (*Publisher, error) {
	if 0 == len(configuration.Broadcast) {
		return nil, fault.MissingParameters
	}

	var privateKey []byte
	var publicKey []byte
	if "" != configuration.PrivateKey || "" != configuration.PublicKey {
		var err error
		privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return nil, err
		}
		publicKey, err = zmqutil.ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return nil, err
		}
		log.Tracef("public key: %x", publicKey)

		err = zmqutil.StartAuthentication()
		if nil != err {
			log.Errorf("zmq authentication error: %s", err)
			return nil, err
		}
	} else {
		log.Warn("no keys configured: broadcast is not encrypted")
	}

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, publisherZapDomain, privateKey, publicKey, configuration.Broadcast)
	if nil != err {
		return nil, err
	}

	return &Publisher{
		log:     log,
		chain:   chainName,
		queue:   queue.Chan(),
		socket4: socket4,
		socket6: socket6,
	}, nil
}

// Run - send queued items until shutdown
func (pub *Publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := pub.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-pub.queue:
			pub.process(item)
		}
	}

	if nil != pub.socket4 {
		pub.socket4.Close()
	}
	if nil != pub.socket6 {
		pub.socket6.Close()
	}
	log.Infof("stopped  sent: %d  failed: %d", pub.sent.Uint64(), pub.failed.Uint64())
}

// Sent - number of items broadcast
func (pub *Publisher) Sent() uint64 {
	return pub.sent.Uint64()
}

func (pub *Publisher) process(item messagebus.Message) {
	frames, err := encode(pub.chain, item)
	if nil != err {
		pub.log.Errorf("encode: %q  error: %s", item.From, err)
		pub.failed.Increment()
		return
	}

	for _, socket := range []*zmq.Socket{pub.socket4, pub.socket6} {
		if nil == socket {
			continue
		}
		_, err := socket.SendMessage(frames...)
		if nil != err {
			pub.log.Errorf("send: %q  error: %s", item.From, err)
			pub.failed.Increment()
			return
		}
	}
	pub.sent.Increment()
	pub.log.Debugf("sent: %s", frames[2])
}

func encode(chainName string, item messagebus.Message) ([]interface{}, error) {
	data, err := json.Marshal(item.Item)
	if nil != err {
		return nil, err
	}
	return []interface{}{chainName, item.From, data}, nil
}
