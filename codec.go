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
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zlib"
)

// decompress runs raw against the codec selected by id and returns the
// plaintext. It is the only place the three SDICT compression variants are
// dispatched, so that adding or auditing a codec never requires touching the
// unit reader or any caller.
func decompress(id byte, raw []byte) ([]byte, error) {
	switch id {
	case codecIdentity:
		return raw, nil
	case codecZlib:
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, corruptionErr("zlib", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, corruptionErr("zlib", err)
		}
		return out, nil
	case codecBzip2:
		br, err := bzip2.NewReader(bytes.NewReader(raw), nil)
		if err != nil {
			return nil, corruptionErr("bzip2", err)
		}
		defer br.Close()
		out, err := io.ReadAll(br)
		if err != nil {
			return nil, corruptionErr("bzip2", err)
		}
		return out, nil
	default:
		// parseHeader already rejects unknown codec ids; reaching here would
		// mean a caller constructed a Header by hand with a bad CodecID.
		return nil, formatErr("unknown compression codec id")
	}
}
