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

// IndexingThreshold is the batch size above which a collected run of
// SkippedWord items triggers short-index densification.
const IndexingThreshold = 1000

// DensifyProgress reports progress through a single level of densification.
// A caller (e.g. the CLI's reindex command) can use it to drive a progress
// bar; it is otherwise safe to ignore.
type DensifyProgress struct {
	// Length is the short-index level currently being populated.
	Length int
	// Index is the position within Items currently processed.
	Index int
	// Total is len(Items) for the current level.
	Total int
}

// indexedWord is a SkippedWord with its word pre-decoded to runes, so that
// prefix slicing respects code point boundaries rather than byte offsets.
type indexedWord struct {
	runes []rune
	pos   int64
}

// densifyTask is one unit of work on the explicit stack that replaces the
// recursive generator from the reference implementation.
type densifyTask struct {
	items  []indexedWord
	length int
}

// Densify extends the short index to deeper prefix lengths based on a batch
// of words observed but skipped during a prefix scan. It is the caller's
// responsibility to only invoke this once len(words) exceeds
// IndexingThreshold (spec.md §4.7); Densify itself does not gate on the
// threshold so that callers (and tests) can force a pass at a smaller batch
// size.
//
// progress, if non-nil, is invoked synchronously for every word considered at
// every densified level; it must not retain the DensifyProgress value beyond
// the call. This is a callback rather than a channel so that Densify runs
// entirely on the caller's goroutine, consistent with the package's
// single-threaded cooperative concurrency model.
func (d *Dictionary) Densify(words []SkippedWord, progress func(DensifyProgress)) {
	if len(words) == 0 {
		return
	}

	items := make([]indexedWord, len(words))
	for i, w := range words {
		items[i] = indexedWord{runes: []rune(w.Word), pos: w.FullIndexPointer}
	}

	startLength := int(d.header.ShortIndexDepth) + 1
	stack := []densifyTask{{items: items, length: startLength}}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, d.densifyLevel(task, progress)...)
	}
}

// densifyLevel runs one level of the densification algorithm and returns any
// child tasks it spawned, to be pushed back onto the work stack.
func (d *Dictionary) densifyLevel(task densifyTask, progress func(DensifyProgress)) []densifyTask {
	level := d.shortIndex.level(task.length)

	var children []densifyTask
	var prevHead string
	hasPrev := false
	lastSplit := 0

	headAt := func(w indexedWord) string {
		n := task.length
		if n > len(w.runes) {
			n = len(w.runes)
		}
		return string(w.runes[:n])
	}

	total := len(task.items)
	for i, word := range task.items {
		head := headAt(word)
		if progress != nil {
			progress(DensifyProgress{Length: task.length, Index: i, Total: total})
		}

		if !hasPrev || head != prevHead {
			level[head] = word.pos
			if i-lastSplit > IndexingThreshold {
				children = append(children, densifyTask{
					items:  task.items[lastSplit:i],
					length: task.length + 1,
				})
			}
			lastSplit = i
		}
		prevHead = head
		hasPrev = true
	}

	if total-1-lastSplit > IndexingThreshold {
		children = append(children, densifyTask{
			items:  task.items[lastSplit:],
			length: task.length + 1,
		})
	}

	return children
}
