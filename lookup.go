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
	"strings"
)

// LookupKind discriminates the two variants a LookupIter can produce.
type LookupKind int

const (
	// KindMatched indicates the entry's word begins with the requested
	// prefix.
	KindMatched LookupKind = iota
	// KindSkipped indicates the entry was traversed (it shares the deepest
	// known short-index prefix) but does not match the full requested
	// prefix.
	KindSkipped
)

// WordLookup carries a matched word and a reference back to the Dictionary
// and article pointer needed to fetch its article body on demand.
type WordLookup struct {
	Word           string
	ArticlePointer uint32

	dict *Dictionary
}

// ReadArticle fetches and decompresses the article body for this match.
func (w WordLookup) ReadArticle() ([]byte, error) {
	return w.dict.ReadArticle(w.ArticlePointer)
}

// SkippedWord carries a word encountered during a scan that did not match the
// requested prefix. FullIndexPointer is the word's offset relative to the
// full index block, suitable as densification input.
type SkippedWord struct {
	Word             string
	FullIndexPointer int64
}

// LookupItem is the tagged union a LookupIter yields: either a Matched word
// or a Skipped one, never both, per entry.
type LookupItem struct {
	Kind    LookupKind
	Matched WordLookup
	Skipped SkippedWord
}

// LookupIter is a lazy, single-pass, non-restartable walk over the full
// index starting from the best known short-index pointer for a requested
// prefix. Call Next until it returns false, or call Stop to abandon the walk
// early; either path runs the same finalization step exactly once.
//
// A LookupIter holds an implicit back reference to its Dictionary and must
// not be used from more than one goroutine, nor interleaved with other
// methods on the same Dictionary.
type LookupIter struct {
	d      *Dictionary
	prefix string
	up     []rune

	startsWith string
	pos        int64
	stride     int64
	matchedAny bool

	finished  bool
	finalized bool
	err       error
}

// LookupFrom begins a prefix lookup for prefix in the dictionary's byte
// encoding. The returned iterator is empty if no short-index level holds a
// prefix of p.
func (d *Dictionary) LookupFrom(prefix string) *LookupIter {
	up := []rune(prefix)
	it := &LookupIter{d: d, prefix: prefix, up: up}

	sp := d.shortIndex.pickStartingPoint(up)
	if !sp.found || sp.offset == negativeCache {
		it.finished = true
		it.matchedAny = sp.found // a real-but-empty result was already recorded; don't re-record it
		it.finalize()
		return it
	}

	it.startsWith = sp.startsWith
	it.pos = int64(d.header.FullIndexOffset)
	it.stride = sp.offset
	return it
}

// AllWords walks the entire full index from its start and returns every
// word as a SkippedWord (word plus its offset relative to the full index
// block), independent of the short index. It is the basis for a reindex
// pass: the result feeds directly into Densify.
func (d *Dictionary) AllWords() ([]SkippedWord, error) {
	var words []SkippedWord
	pos := int64(d.header.FullIndexOffset)
	for {
		entry, err := d.readFullIndexEntry(pos)
		if err != nil {
			return nil, err
		}
		if entry.endOfList() {
			return words, nil
		}
		words = append(words, SkippedWord{
			Word:             string(entry.word),
			FullIndexPointer: pos - int64(d.header.FullIndexOffset),
		})
		pos += int64(entry.recordLength)
	}
}

// finalize runs the negative-cache insert exactly once, at exhaustion or
// early Stop, whichever comes first.
func (it *LookupIter) finalize() {
	if it.finalized {
		return
	}
	it.finalized = true
	if !it.matchedAny {
		it.d.shortIndex.setNegative(len(it.up), string(it.up))
	}
}

// Next advances the walk by one full-index record and reports whether an
// item was produced. It returns false both at natural exhaustion and on
// error; callers should check Err after a false return.
func (it *LookupIter) Next() (LookupItem, bool) {
	if it.finished {
		it.finalize()
		return LookupItem{}, false
	}

	it.pos += it.stride
	entry, err := it.d.readFullIndexEntry(it.pos)
	if err != nil {
		it.err = err
		it.finished = true
		it.finalize()
		return LookupItem{}, false
	}
	if entry.endOfList() {
		it.finished = true
		it.finalize()
		return LookupItem{}, false
	}

	word := string(entry.word)
	if !strings.HasPrefix(word, it.startsWith) {
		it.finished = true
		it.finalize()
		return LookupItem{}, false
	}

	// The record length IS the stride to the next entry.
	it.stride = int64(entry.recordLength)

	if strings.HasPrefix(word, it.prefix) {
		it.matchedAny = true
		return LookupItem{
			Kind: KindMatched,
			Matched: WordLookup{
				Word:           word,
				ArticlePointer: entry.articlePointer,
				dict:           it.d,
			},
		}, true
	}

	return LookupItem{
		Kind: KindSkipped,
		Skipped: SkippedWord{
			Word:             word,
			FullIndexPointer: it.pos - int64(it.d.header.FullIndexOffset),
		},
	}, true
}

// Err returns the error, if any, that stopped the walk early.
func (it *LookupIter) Err() error {
	return it.err
}

// Stop abandons the walk before exhaustion; Err then reports
// ErrLookupStopped. It is safe to call multiple times and safe to call after
// Next has already returned false, in which case Err is left unchanged.
func (it *LookupIter) Stop() {
	if !it.finished {
		it.err = ErrLookupStopped
	}
	it.finished = true
	it.finalize()
}
