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
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// cacheRecord is the on-disk representation of an IndexCacheRecord: the
// persisted (title, version, ShortIndex) tuple. It is encoded with CBOR, a
// stable binary encoding, per the format's "implementer's choice" clause.
type cacheRecord struct {
	Title   string
	Version string
	Levels  []map[string]int64
}

// cacheFilePath returns <cacheDir>/<basename(path)>-<version>.index.
func cacheFilePath(cacheDir, path, version string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("%s-%s.index", filepath.Base(path), version))
}

// loadIndexCache attempts to read and validate the sidecar cache. On any
// failure, or on a title/version mismatch, it returns ok=false so the caller
// falls back to loading the on-disk short index; this is advisory-only per
// the format's cache-validation protocol.
func loadIndexCache(path, title, version string) (*ShortIndex, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var rec cacheRecord
	if err := cbor.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}

	if rec.Title != title || rec.Version != version {
		return nil, false
	}

	si := &ShortIndex{levels: rec.Levels}
	if len(si.levels) == 0 {
		si.levels = append(si.levels, make(map[string]int64))
	}
	return si, true
}

// saveIndexCache atomically overwrites the sidecar cache file with the
// current (title, version, ShortIndex), creating cacheDir if needed. The
// write goes to a temporary sibling file first, which is fsynced then
// renamed over the destination, so a crash mid-write never leaves a
// truncated cache in place; the temp file is removed if any step fails.
func saveIndexCache(cacheDir, path, title, version string, si *ShortIndex) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return ioErr("create cache dir", err)
	}

	rec := cacheRecord{Title: title, Version: version, Levels: si.levels}
	raw, err := cbor.Marshal(rec)
	if err != nil {
		return ioErr("encode index cache", err)
	}

	dest := cacheFilePath(cacheDir, path, version)
	tmp, err := os.CreateTemp(cacheDir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return ioErr("create temp cache file", err)
	}
	tmpName := tmp.Name()

	// Ensure the temp file never lingers, on any exit path.
	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return ioErr("write temp cache file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return ioErr("sync temp cache file", err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr("close temp cache file", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return ioErr("rename cache file", err)
	}

	succeeded = true
	return nil
}
