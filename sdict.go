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

// Package sdict implements a reader and indexer for the SDICT binary
// dictionary format: a compact, compressed on-disk dictionary consisting of a
// fixed-size header, a hierarchical short index used to accelerate prefix
// lookups, a full index of ordered word entries, and a pool of compressed
// article payloads.
//
// Unless otherwise informed clients should not assume implementations in this
// package are safe for parallel execution. A *Dictionary and the *LookupIter
// values it produces must be used from a single goroutine at a time; distinct
// Dictionary handles are independent and may be used concurrently.
package sdict

import (
	"errors"
	"fmt"
)

// errSdict is the base error for all sdict errors.
var errSdict = errors.New("sdict")

var (
	// ErrFormat indicates the file is not a valid SDICT dictionary, or that a
	// field in it violates one of the format's structural invariants
	// (monotonic section offsets, a known compression codec id). It is fatal
	// for Open.
	ErrFormat = fmt.Errorf("%w: format", errSdict)

	// ErrCorruption indicates a compressed unit failed to decompress, a full
	// index record was truncated, or the cursor ran past a section boundary.
	// It is fatal only for the unit being read; the Dictionary remains
	// usable.
	ErrCorruption = fmt.Errorf("%w: corruption", errSdict)

	// ErrIO indicates an underlying file-system failure.
	ErrIO = fmt.Errorf("%w: io", errSdict)

	// ErrEncoding indicates a short index row held a code point that could
	// not be decoded. It is recovered locally: the row is skipped and
	// loading continues.
	ErrEncoding = fmt.Errorf("%w: encoding", errSdict)

	// ErrLookupStopped indicates a LookupIter was stopped by its caller
	// before exhaustion. It is not a failure of the core; it exists so
	// callers can distinguish early abort from natural exhaustion.
	ErrLookupStopped = fmt.Errorf("%w: lookup stopped", errSdict)

	// ErrClosed indicates an operation was attempted on a closed Dictionary.
	ErrClosed = fmt.Errorf("%w: dictionary closed", errSdict)
)

func ioErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

func formatErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrFormat, msg)
}

func corruptionErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCorruption, op, err)
}
