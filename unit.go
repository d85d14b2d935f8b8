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

// readUnit seeks to offset, reads a u32 length-prefixed blob, and returns it
// decompressed through the dictionary's codec. It is the sole path by which
// title, copyright, version, the short-index table, and article payloads are
// materialized.
func (d *Dictionary) readUnit(offset uint32) ([]byte, error) {
	if _, err := d.file.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, ioErr("seek", err)
	}

	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(d.file, lenBuf); err != nil {
		return nil, ioErr("read unit length", err)
	}
	n := readU32(lenBuf)

	raw := make([]byte, n)
	if _, err := io.ReadFull(d.file, raw); err != nil {
		return nil, ioErr("read unit body", err)
	}

	return decompress(d.header.CodecID, raw)
}
