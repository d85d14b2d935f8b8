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
	"unicode/utf8"
)

// negativeCache is the sentinel pointer value recording that a prefix was
// searched and no such word exists.
const negativeCache int64 = -1

// ShortIndex is an ordered sequence of per-level mappings. level[k] maps a
// k-character prefix, decoded to code points, to an offset into the full
// index block (or negativeCache). Level 0 is an empty-prefix entry, unused in
// practice. ShortIndex only ever grows: densification appends levels, it
// never removes them.
type ShortIndex struct {
	levels []map[string]int64
}

// newShortIndex allocates a ShortIndex with depth+2 empty levels, as the
// on-disk load always does regardless of how many levels densification will
// add later.
func newShortIndex(depth byte) *ShortIndex {
	si := &ShortIndex{levels: make([]map[string]int64, int(depth)+2)}
	for i := range si.levels {
		si.levels[i] = make(map[string]int64)
	}
	return si
}

// Depth returns the highest allocated level index, i.e. len(levels)-1. That
// level may hold no entries.
func (si *ShortIndex) Depth() int {
	return len(si.levels) - 1
}

// ensureDepth appends empty levels until len(levels) >= depth+1.
func (si *ShortIndex) ensureDepth(depth int) {
	for len(si.levels) < depth+1 {
		si.levels = append(si.levels, make(map[string]int64))
	}
}

// level returns level k, allocating it (and any level below it) first if
// necessary.
func (si *ShortIndex) level(k int) map[string]int64 {
	si.ensureDepth(k)
	return si.levels[k]
}

// lookup returns the stored pointer for prefix at level k and whether it was
// present.
func (si *ShortIndex) lookup(k int, prefix string) (int64, bool) {
	if k >= len(si.levels) {
		return 0, false
	}
	v, ok := si.levels[k][prefix]
	return v, ok
}

// setNegative records that prefix (of rune length k) was searched and found
// nothing.
func (si *ShortIndex) setNegative(k int, prefix string) {
	si.level(k)[prefix] = negativeCache
}

// startingPoint is the result of picking the best known starting pointer for
// a prefix lookup: the deepest level whose key is a prefix of the requested
// word.
type startingPoint struct {
	offset     int64
	startsWith string
	found      bool
}

// pickStartingPoint implements spec step 1 of lookup_from: walk levels
// 1..Depth(), remembering the deepest hit. up is the requested prefix decoded
// to runes. A negative-cache sentinel at a deeper level still counts as the
// deepest hit and overrides a real pointer from a shallower level: the
// caller (LookupFrom) is responsible for treating offset == negativeCache as
// a known-empty result rather than a place to start walking.
func (si *ShortIndex) pickStartingPoint(up []rune) startingPoint {
	var sp startingPoint
	for i := 1; i < len(si.levels) && i <= len(up); i++ {
		sub := string(up[:i])
		if ptr, ok := si.levels[i][sub]; ok {
			sp = startingPoint{offset: ptr, startsWith: sub, found: true}
		}
	}
	return sp
}

// loadShortIndex reads the on-disk short index table (a single
// length-prefixed compressed unit at header.ShortIndexOffset) and decodes it
// per the format's row layout: depth u32 code points (0 terminates early,
// but the row always occupies (depth+1)*4 bytes) followed by one u32 pointer.
func (d *Dictionary) loadShortIndex() (*ShortIndex, error) {
	depth := int(d.header.ShortIndexDepth)
	rowLen := (depth + 1) * 4

	raw, err := d.readUnit(d.header.ShortIndexOffset)
	if err != nil {
		return nil, err
	}

	si := newShortIndex(d.header.ShortIndexDepth)

	for i := 0; i < int(d.header.ShortIndexLength); i++ {
		rowStart := i * rowLen
		if rowStart+rowLen > len(raw) {
			return nil, corruptionErr("short index", formatErr("table shorter than declared row count"))
		}
		row := raw[rowStart : rowStart+rowLen]

		runes := make([]rune, 0, depth)
		skip := false
		for j := 0; j < depth; j++ {
			cp := readU32(row[j*4 : j*4+4])
			if cp == 0 {
				break
			}
			r := rune(cp)
			if !utf8.ValidRune(r) {
				d.logger.Warnw("short index row has unrepresentable code point, skipping",
					"row", i, "codePoint", cp)
				skip = true
				break
			}
			runes = append(runes, r)
		}
		if skip {
			continue
		}

		// The pointer always sits at a fixed depth*4 offset from the row
		// start, whether or not a 0 terminator appeared early.
		pointer := readU32(row[depth*4 : depth*4+4])

		word := string(runes)
		si.level(len(runes))[word] = int64(pointer)
	}

	return si, nil
}
