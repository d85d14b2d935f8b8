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
)

// headerSize is the fixed number of bytes occupied by the SDICT header.
const headerSize = 43

// signature is the literal magic bytes that must open every SDICT file.
var signature = [4]byte{'s', 'd', 'c', 't'}

// Compression codec ids, taken from the low nibble of the comp_and_depth
// header byte.
const (
	codecIdentity = 0
	codecZlib     = 1
	codecBzip2    = 2
)

// Header is the fixed-offset descriptor parsed from the first 43 bytes of an
// SDICT file. It is immutable after parseHeader.
type Header struct {
	WordLang    string // input_lang: word (index) language tag.
	ArticleLang string // output_lang: article language tag.

	CodecID         byte // low nibble of comp_and_depth.
	ShortIndexDepth byte // high nibble of comp_and_depth.

	NumWords          uint32
	ShortIndexLength  uint32
	TitleOffset       uint32
	CopyrightOffset   uint32
	VersionOffset     uint32
	ShortIndexOffset  uint32
	FullIndexOffset   uint32
	ArticlesOffset    uint32
}

// parseHeader decodes a Header from the first headerSize bytes of an SDICT
// file and validates the structural invariants from the format spec:
// the signature, the compression codec id, and offset monotonicity.
func parseHeader(raw []byte) (Header, error) {
	if len(raw) < headerSize {
		return Header{}, formatErr("header truncated")
	}

	var h Header
	if !bytes.Equal(raw[0x00:0x04], signature[:]) {
		return Header{}, formatErr("not a valid sdict dictionary")
	}

	h.WordLang = trimNUL(raw[0x04:0x07])
	h.ArticleLang = trimNUL(raw[0x07:0x0a])

	compAndDepth := raw[0x0a]
	h.CodecID = compAndDepth & 0x0f
	h.ShortIndexDepth = compAndDepth >> 4

	h.NumWords = readU32(raw[0x0b:0x0f])
	h.ShortIndexLength = readU32(raw[0x0f:0x13])
	h.TitleOffset = readU32(raw[0x13:0x17])
	h.CopyrightOffset = readU32(raw[0x17:0x1b])
	h.VersionOffset = readU32(raw[0x1b:0x1f])
	h.ShortIndexOffset = readU32(raw[0x1f:0x23])
	h.FullIndexOffset = readU32(raw[0x23:0x27])
	h.ArticlesOffset = readU32(raw[0x27:0x2b])

	if h.CodecID != codecIdentity && h.CodecID != codecZlib && h.CodecID != codecBzip2 {
		return Header{}, formatErr("unknown compression codec id")
	}
	if !(h.ShortIndexOffset < h.FullIndexOffset && h.FullIndexOffset < h.ArticlesOffset) {
		return Header{}, formatErr("section offsets are not monotonically increasing")
	}

	return h, nil
}

// readU8 reads a single unsigned byte.
func readU8(b []byte) uint8 {
	return b[0]
}

// readU16 reads a little-endian uint16.
func readU16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// readU32 reads a little-endian uint32.
func readU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// trimNUL decodes a fixed-length header field as raw bytes with trailing NUL
// bytes removed.
func trimNUL(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
