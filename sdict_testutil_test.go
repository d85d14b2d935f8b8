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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zlib"
)

// compressFor compresses plaintext for the given codec id, for building
// synthetic test fixtures.
func compressFor(t *testing.T, codecID byte, plaintext []byte) []byte {
	t.Helper()
	switch codecID {
	case codecIdentity:
		return plaintext
	case codecZlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(plaintext); err != nil {
			t.Fatalf("zlib write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("zlib close: %v", err)
		}
		return buf.Bytes()
	case codecBzip2:
		var buf bytes.Buffer
		bw, err := bzip2.NewWriter(&buf, nil)
		if err != nil {
			t.Fatalf("bzip2 writer: %v", err)
		}
		if _, err := bw.Write(plaintext); err != nil {
			t.Fatalf("bzip2 write: %v", err)
		}
		if err := bw.Close(); err != nil {
			t.Fatalf("bzip2 close: %v", err)
		}
		return buf.Bytes()
	default:
		t.Fatalf("unsupported codec id %d", codecID)
		return nil
	}
}

// buildUnit returns a length-prefixed, compressed unit as the format stores
// title/copyright/version/short-index/article payloads.
func buildUnit(t *testing.T, codecID byte, plaintext []byte) []byte {
	t.Helper()
	compressed := compressFor(t, codecID, plaintext)
	buf := make([]byte, 4+len(compressed))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(compressed)))
	copy(buf[4:], compressed)
	return buf
}

// fullIndexRecord returns the raw bytes of one full-index record.
func fullIndexRecord(word string, articlePointer uint32) []byte {
	wb := []byte(word)
	rec := make([]byte, 8+len(wb))
	binary.LittleEndian.PutUint16(rec[0:2], uint16(8+len(wb)))
	binary.LittleEndian.PutUint32(rec[4:8], articlePointer)
	copy(rec[8:], wb)
	return rec
}

// endOfListRecord returns the 8-byte zero record signaling end-of-list.
func endOfListRecord() []byte {
	return make([]byte, 8)
}

// testDict is a synthetic dictionary fixture: three words "cat", "car",
// "dog" with independently-computed article and short-index pointers,
// matching the shape of the spec's worked examples.
type testDict struct {
	path    string
	cacheDir string
	codecID byte
	depth   byte

	title, version, copyright string

	// articleText maps word -> its (plaintext) article body.
	articleText map[string]string
}

// buildTestDict assembles a minimal SDICT file with words "cat", "car",
// "dog" (in that order) under the given codec and short-index depth (1
// indexes single-character prefixes "c" and "d").
func buildTestDict(t *testing.T, codecID byte, depth byte) *testDict {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.dict")
	cacheDir := filepath.Join(dir, "cache")

	td := &testDict{
		path:     path,
		cacheDir: cacheDir,
		codecID:  codecID,
		depth:    depth,
		title:    "Test Dictionary",
		version:  "1.0",
		copyright: "(c) nobody",
		articleText: map[string]string{
			"cat": "feline article",
			"car": "vehicle article",
			"dog": "canine article",
		},
	}

	// Full index block: cat, car, dog, then an explicit end-of-list record.
	fiCat := fullIndexRecord("cat", 0) // article pointer filled below
	fiCar := fullIndexRecord("car", 0)
	fiDog := fullIndexRecord("dog", 0)

	// Articles block: one unit per word, in cat/car/dog order; record actual
	// offsets so the full index's article pointers are correct.
	var articles bytes.Buffer
	articlePtr := map[string]uint32{}
	for _, w := range []string{"cat", "car", "dog"} {
		articlePtr[w] = uint32(articles.Len())
		articles.Write(buildUnit(t, codecID, []byte(td.articleText[w])))
	}
	// Patch article pointers into the full index records now that they're
	// known.
	binary.LittleEndian.PutUint32(fiCat[4:8], articlePtr["cat"])
	binary.LittleEndian.PutUint32(fiCar[4:8], articlePtr["car"])
	binary.LittleEndian.PutUint32(fiDog[4:8], articlePtr["dog"])

	var fullIndex bytes.Buffer
	catOff := uint32(fullIndex.Len())
	fullIndex.Write(fiCat)
	fullIndex.Write(fiCar)
	dogOff := uint32(fullIndex.Len())
	fullIndex.Write(fiDog)
	fullIndex.Write(endOfListRecord())

	// Short index: depth 1, rows for "c" -> catOff, "d" -> dogOff.
	rowLen := (int(depth) + 1) * 4
	shortIndexPlain := make([]byte, 0, 2*rowLen)
	shortIndexPlain = append(shortIndexPlain, shortIndexRow('c', catOff, depth)...)
	shortIndexPlain = append(shortIndexPlain, shortIndexRow('d', dogOff, depth)...)

	titleUnit := buildUnit(t, codecID, []byte(td.title))
	versionUnit := buildUnit(t, codecID, []byte(td.version))
	copyrightUnit := buildUnit(t, codecID, []byte(td.copyright))
	shortIndexUnit := buildUnit(t, codecID, shortIndexPlain)

	// Lay out sections after the header, in header-field order.
	titleOff := uint32(headerSize)
	copyrightOff := titleOff + uint32(len(titleUnit))
	versionOff := copyrightOff + uint32(len(copyrightUnit))
	shortIndexOff := versionOff + uint32(len(versionUnit))
	fullIndexOff := shortIndexOff + uint32(len(shortIndexUnit))
	articlesOff := fullIndexOff + uint32(fullIndex.Len())

	header := make([]byte, headerSize)
	copy(header[0x00:0x04], signature[:])
	copy(header[0x04:0x07], []byte("eng"))
	copy(header[0x07:0x0a], []byte("eng"))
	header[0x0a] = (depth << 4) | codecID
	binary.LittleEndian.PutUint32(header[0x0b:0x0f], 3)
	binary.LittleEndian.PutUint32(header[0x0f:0x13], 2)
	binary.LittleEndian.PutUint32(header[0x13:0x17], titleOff)
	binary.LittleEndian.PutUint32(header[0x17:0x1b], copyrightOff)
	binary.LittleEndian.PutUint32(header[0x1b:0x1f], versionOff)
	binary.LittleEndian.PutUint32(header[0x1f:0x23], shortIndexOff)
	binary.LittleEndian.PutUint32(header[0x23:0x27], fullIndexOff)
	binary.LittleEndian.PutUint32(header[0x27:0x2b], articlesOff)

	var out bytes.Buffer
	out.Write(header)
	out.Write(titleUnit)
	out.Write(copyrightUnit)
	out.Write(versionUnit)
	out.Write(shortIndexUnit)
	out.Write(fullIndex.Bytes())
	out.Write(articles.Bytes())

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatalf("write test dict: %v", err)
	}

	return td
}

// shortIndexRow returns one (depth+1)*4 byte short-index row for a
// single-character prefix.
func shortIndexRow(r rune, pointer uint32, depth byte) []byte {
	row := make([]byte, (int(depth)+1)*4)
	binary.LittleEndian.PutUint32(row[0:4], uint32(r))
	binary.LittleEndian.PutUint32(row[int(depth)*4:int(depth)*4+4], pointer)
	return row
}

func (td *testDict) open(t *testing.T, opts ...Option) *Dictionary {
	t.Helper()
	allOpts := append([]Option{WithCacheDir(td.cacheDir)}, opts...)
	d, err := Open(td.path, allOpts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return d
}
