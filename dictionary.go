// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sdict

import (
	"hash/fnv"
	"os"

	"go.uber.org/zap"
)

type dictionaryState int

const (
	stateOpen dictionaryState = iota
	stateClosed
)

// Dictionary is an open handle to one SDICT file. It is owned exclusively by
// one caller: a file handle and a mutable ShortIndex back every method, and
// they must not be touched from more than one goroutine without external
// serialization. Concurrent reads across distinct Dictionary handles are
// independent and safe.
type Dictionary struct {
	path     string
	file     *os.File
	encoding string
	cacheDir string
	noCache  bool
	logger   *zap.SugaredLogger

	header Header

	title     string
	version   string
	copyright string

	shortIndex *ShortIndex

	state dictionaryState
}

// Open reads the header, title, version, and copyright of the SDICT file at
// path, loads its short index (preferring a valid sidecar cache over the
// on-disk table), and returns a ready-to-use Dictionary.
func Open(path string, opts ...Option) (*Dictionary, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open", err)
	}

	d := &Dictionary{
		path:     path,
		file:     f,
		encoding: o.encoding,
		cacheDir: o.cacheDir,
		noCache:  o.noCache,
		logger:   o.logger,
		state:    stateOpen,
	}

	if err := d.init(); err != nil {
		f.Close()
		return nil, err
	}

	return d, nil
}

// init performs the Opening-state work: header parse, title/version/
// copyright load, and short-index resolution (cache-or-disk).
func (d *Dictionary) init() error {
	raw := make([]byte, headerSize)
	if _, err := d.file.ReadAt(raw, 0); err != nil {
		return ioErr("read header", err)
	}
	h, err := parseHeader(raw)
	if err != nil {
		return err
	}
	d.header = h

	title, err := d.readUnit(h.TitleOffset)
	if err != nil {
		return err
	}
	d.title = string(title)

	version, err := d.readUnit(h.VersionOffset)
	if err != nil {
		return err
	}
	d.version = string(version)

	copyright, err := d.readUnit(h.CopyrightOffset)
	if err != nil {
		return err
	}
	d.copyright = string(copyright)

	if !d.noCache {
		if si, ok := loadIndexCache(d.cacheFilePath(), d.title, d.version); ok {
			d.shortIndex = si
			return nil
		}
		d.logger.Warnw("index cache miss or stale, falling back to on-disk short index",
			"path", d.path)
	}

	si, err := d.loadShortIndex()
	if err != nil {
		return err
	}
	d.shortIndex = si
	return nil
}

// cacheFilePath returns this Dictionary's sidecar cache file path.
func (d *Dictionary) cacheFilePath() string {
	return cacheFilePath(d.cacheDir, d.path, d.version)
}

// Title returns the dictionary's title, as decoded from its title unit.
func (d *Dictionary) Title() string { return d.title }

// Version returns the dictionary's version string.
func (d *Dictionary) Version() string { return d.version }

// Copyright returns the dictionary's copyright notice.
func (d *Dictionary) Copyright() string { return d.copyright }

// WordLanguage returns the index (word) language tag.
func (d *Dictionary) WordLanguage() string { return d.header.WordLang }

// ArticleLanguage returns the article language tag.
func (d *Dictionary) ArticleLanguage() string { return d.header.ArticleLang }

// Header returns the dictionary's parsed header.
func (d *Dictionary) Header() Header { return d.header }

// Path returns the source file path this Dictionary was opened from.
func (d *Dictionary) Path() string { return d.path }

// ShortIndexDepth returns the current (possibly densified) depth of the
// short index, which may exceed header.ShortIndexDepth.
func (d *Dictionary) ShortIndexDepth() int {
	return d.shortIndex.Depth()
}

// ReadArticle fetches and decompresses the article body at the given
// article pointer, relative to the articles block.
func (d *Dictionary) ReadArticle(pointer uint32) ([]byte, error) {
	if d.state == stateClosed {
		return nil, ErrClosed
	}
	return d.readUnit(d.header.ArticlesOffset + pointer)
}

// Close transitions the Dictionary to Closed. If persist is true, the
// current short index is flushed to the sidecar cache first. Close is
// idempotent: closing an already-closed Dictionary is a no-op.
func (d *Dictionary) Close(persist bool) error {
	if d.state == stateClosed {
		return nil
	}
	d.state = stateClosed

	var saveErr error
	if persist && !d.noCache {
		saveErr = saveIndexCache(d.cacheDir, d.path, d.title, d.version, d.shortIndex)
		if saveErr != nil {
			d.logger.Warnw("failed to persist index cache", "error", saveErr)
		}
	}

	closeErr := d.file.Close()
	if closeErr != nil {
		return ioErr("close", closeErr)
	}
	return saveErr
}

// RemoveIndexCacheFile deletes the sidecar cache file for a dictionary at
// path with the given version, under cacheDir. It must be called only after
// the owning Dictionary has been Closed, since some platforms enforce
// mandatory file locking.
func RemoveIndexCacheFile(cacheDir, path, version string) error {
	if err := os.Remove(cacheFilePath(cacheDir, path, version)); err != nil {
		return ioErr("remove index cache file", err)
	}
	return nil
}

// Key returns the (title, version, file name) identity triple used for
// Equal and Hash.
func (d *Dictionary) Key() (title, version, fileName string) {
	return d.title, d.version, d.path
}

// Equal reports whether two Dictionary handles share the same
// (title, version, file name) identity.
func (d *Dictionary) Equal(other *Dictionary) bool {
	if other == nil {
		return false
	}
	at, av, an := d.Key()
	bt, bv, bn := other.Key()
	return at == bt && av == bv && an == bn
}

// Hash returns a hash derived from the (title, version, file name) identity
// triple, consistent with Equal.
func (d *Dictionary) Hash() uint64 {
	h := fnv.New64a()
	t, v, n := d.Key()
	h.Write([]byte(t))
	h.Write([]byte{0})
	h.Write([]byte(v))
	h.Write([]byte{0})
	h.Write([]byte(n))
	return h.Sum64()
}
