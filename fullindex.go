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
	"io"
)

// fullIndexEntry is a single decoded record from the full index block: a
// length-prefixed word pointing at a compressed article.
type fullIndexEntry struct {
	// recordLength is the total on-disk size of this record, including the
	// 8-byte fixed part. It is also the stride to the next record.
	recordLength uint16
	// word is nil when recordLength is 0 (end-of-list).
	word          []byte
	articlePointer uint32
}

// endOfList reports whether the entry signals the end of the full index.
func (e fullIndexEntry) endOfList() bool {
	return e.recordLength == 0
}

// readFullIndexEntry reads one record at absolute offset abs. A recordLength
// of 0 signals end-of-list. Reaching or passing articlesOff without an
// explicit end-of-list marker is treated as end-of-list, per the format's
// defensive bound.
func (d *Dictionary) readFullIndexEntry(abs int64) (fullIndexEntry, error) {
	if abs >= int64(d.header.ArticlesOffset) {
		d.logger.Warnw("full index cursor reached articles offset without end-of-list marker",
			"offset", abs)
		return fullIndexEntry{}, nil
	}

	if _, err := d.file.Seek(abs, io.SeekStart); err != nil {
		return fullIndexEntry{}, ioErr("seek", err)
	}

	fixed := make([]byte, 8)
	if _, err := io.ReadFull(d.file, fixed); err != nil {
		return fullIndexEntry{}, corruptionErr("read full index entry", err)
	}

	recordLength := readU16(fixed[0:2])
	// fixed[2:4] are the two reserved bytes; left untouched per the format's
	// forward-compatibility note.
	articlePointer := readU32(fixed[4:8])

	if recordLength == 0 {
		return fullIndexEntry{}, nil
	}
	if recordLength < 8 {
		return fullIndexEntry{}, corruptionErr("read full index entry", formatErr("record length shorter than fixed part"))
	}

	word := make([]byte, recordLength-8)
	if len(word) > 0 {
		if _, err := io.ReadFull(d.file, word); err != nil {
			return fullIndexEntry{}, corruptionErr("read full index word", err)
		}
	}

	return fullIndexEntry{
		recordLength:   recordLength,
		word:           word,
		articlePointer: articlePointer,
	}, nil
}
