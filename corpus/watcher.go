// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package corpus

import (
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - invalidates a directory snapshot when its files change
//
// run it as a background process
type Watcher struct {
	log       *logger.L
	directory *Directory
	watcher   *fsnotify.Watcher
	changed   chan struct{}
}

// NewWatcher - start watching the directory
func NewWatcher(directory *Directory, log *logger.L) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	path, err := filepath.Abs(filepath.Clean(directory.Path()))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	err = watcher.Add(path)
	if nil != err {
		log.Errorf("watcher add: %q  error: %s", path, err)
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:       log,
		directory: directory,
		watcher:   watcher,
		changed:   make(chan struct{}, 1),
	}, nil
}

// Changed - receives after each invalidation, events are dropped if not read
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Run - background process loop
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if !w.relevant(event) {
				continue loop
			}
			log.Debugf("corpus event: %v", event)
			w.directory.Invalidate()
			w.sendEvent()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

			// events may have been lost
			w.directory.Invalidate()
		}
	}

	w.watcher.Close()
	log.Info("stopped")
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, w.directory.extension) {
		return false
	}
	return 0 != event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename)
}

func (w *Watcher) sendEvent() {
	select {
	case w.changed <- struct{}{}:
	default:
		w.log.Debug("change channel full, discard event")
	}
}
