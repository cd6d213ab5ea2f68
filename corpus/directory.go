// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package corpus

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/manuscript-ledger/manuscriptd/fault"
)

// DefaultExtension - suffix of corpus files
const DefaultExtension = ".txt"

// concurrent file reads
const maximumReaders = 8

// cache key of the whole snapshot
const snapshotKey = "snapshot"

// Configuration - corpus section of the configuration file
type Configuration struct {
	Directory    string `gluamapper:"directory" json:"directory"`
	Extension    string `gluamapper:"extension" json:"extension"`
	Archive      bool   `gluamapper:"archive" json:"archive"`
	CacheSeconds int    `gluamapper:"cache_seconds" json:"cache_seconds"`
	Watch        bool   `gluamapper:"watch" json:"watch"`
}

// Directory - corpus of text files in one directory
type Directory struct {
	sync.Mutex
	generation uint64
	directory  string
	extension  string
	ttl        time.Duration
	cache      *cache.Cache
	log        *logger.L
}

// NewDirectory - corpus over the files of a directory
//
// a zero CacheSeconds reads the directory on every snapshot
func NewDirectory(configuration *Configuration, log *logger.L) *Directory {
	extension := configuration.Extension
	if "" == extension {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	ttl := time.Duration(configuration.CacheSeconds) * time.Second

	d := &Directory{
		directory: configuration.Directory,
		extension: extension,
		ttl:       ttl,
		log:       log,
	}
	if ttl > 0 {
		d.cache = cache.New(ttl, 2*ttl)
	}
	return d
}

// Path - the corpus directory
func (d *Directory) Path() string {
	return d.directory
}

// Snapshot - every corpus file, read concurrently
func (d *Directory) Snapshot() (Snapshot, error) {
	if nil != d.cache {
		if cached, found := d.cache.Get(snapshotKey); found {
			return copySnapshot(cached.(Snapshot)), nil
		}
	}

	// hold the lock so that only one reader fills the cache
	d.Lock()
	defer d.Unlock()

	if nil != d.cache {
		if cached, found := d.cache.Get(snapshotKey); found {
			return copySnapshot(cached.(Snapshot)), nil
		}
	}

	generation := atomic.LoadUint64(&d.generation)

	snapshot, err := d.read()
	if nil != err {
		return nil, err
	}

	// an invalidation during the read makes this snapshot stale
	if nil != d.cache && generation == atomic.LoadUint64(&d.generation) {
		d.cache.Set(snapshotKey, snapshot, d.ttl)
	}
	return copySnapshot(snapshot), nil
}

// Invalidate - drop the cached snapshot
func (d *Directory) Invalidate() {
	atomic.AddUint64(&d.generation, 1)
	if nil != d.cache {
		d.cache.Delete(snapshotKey)
	}
}

// Archive - write a manuscript as id + extension
//
// an existing file of the same name is left unchanged
func (d *Directory) Archive(id string, text string) error {
	if "" == id || filepath.Base(id) != id || strings.HasPrefix(id, ".") {
		return fault.InvalidDocumentID
	}
	if !strings.HasSuffix(id, d.extension) {
		id += d.extension
	}

	d.Lock()
	defer d.Unlock()

	name := filepath.Join(d.directory, id)
	if _, err := os.Stat(name); nil == err {
		return nil
	}

	// readers never see a partial file
	tmp, err := ioutil.TempFile(d.directory, ".archive-")
	if nil != err {
		return err
	}
	_, err = tmp.WriteString(text)
	if nil == err {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if nil == err {
		err = closeErr
	}
	if nil == err {
		err = os.Rename(tmp.Name(), name)
	}
	if nil != err {
		_ = os.Remove(tmp.Name())
		return err
	}

	d.log.Infof("archived: %s", id)
	d.Invalidate()
	return nil
}

// read all files matching the extension
func (d *Directory) read() (Snapshot, error) {
	entries, err := ioutil.ReadDir(d.directory)
	if nil != err {
		if os.IsNotExist(err) {
			d.log.Errorf("corpus directory: %q does not exist", d.directory)
			return nil, fault.CorpusUnavailable
		}
		d.log.Errorf("corpus directory: %q  error: %s", d.directory, err)
		return nil, fault.CorpusUnavailable
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Mode().IsRegular() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, d.extension) {
			continue
		}
		names = append(names, name)
	}

	texts := make([]string, len(names))
	limit := make(chan struct{}, maximumReaders)

	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			limit <- struct{}{}
			defer func() { <-limit }()

			buffer, err := ioutil.ReadFile(filepath.Join(d.directory, name))
			if nil != err {
				d.log.Errorf("corpus file: %q  error: %s", name, err)
				return fault.CorpusUnavailable
			}
			texts[i] = string(buffer)
			return nil
		})
	}
	err = g.Wait()
	if nil != err {
		return nil, err
	}

	snapshot := make(Snapshot, len(names))
	for i, name := range names {
		snapshot[name] = texts[i]
	}

	d.log.Debugf("corpus snapshot: %d documents", len(snapshot))
	return snapshot, nil
}

func copySnapshot(s Snapshot) Snapshot {
	c := make(Snapshot, len(s))
	for id, text := range s {
		c[id] = text
	}
	return c
}
