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
	"testing"
)

func collectLookup(it *LookupIter) ([]string, []string) {
	var matched, skipped []string
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		switch item.Kind {
		case KindMatched:
			matched = append(matched, item.Matched.Word)
		case KindSkipped:
			skipped = append(skipped, item.Skipped.Word)
		}
	}
	return matched, skipped
}

// TestLookupFromScenarios covers spec scenarios 1-3: "c" matches cat and
// car but stops before dog; "ca" reaches the same matches via a deeper
// level[1] seek (level 2 is empty so it falls back to level 1); "do"
// matches only dog.
func TestLookupFromScenarios(t *testing.T) {
	t.Parallel()
	td := buildTestDict(t, codecIdentity, 1)
	d := td.open(t, WithoutCache())
	defer d.Close(false)

	t.Run(`lookup "c"`, func(t *testing.T) {
		matched, skipped := collectLookup(d.LookupFrom("c"))
		wantMatched := []string{"cat", "car"}
		if !equalStrings(matched, wantMatched) {
			t.Errorf("matched = %v, want %v", matched, wantMatched)
		}
		if len(skipped) != 0 {
			t.Errorf("skipped = %v, want none (dog does not start with \"c\")", skipped)
		}
	})

	t.Run(`lookup "ca"`, func(t *testing.T) {
		matched, _ := collectLookup(d.LookupFrom("ca"))
		wantMatched := []string{"cat", "car"}
		if !equalStrings(matched, wantMatched) {
			t.Errorf("matched = %v, want %v", matched, wantMatched)
		}
	})

	t.Run(`lookup "do"`, func(t *testing.T) {
		matched, _ := collectLookup(d.LookupFrom("do"))
		wantMatched := []string{"dog"}
		if !equalStrings(matched, wantMatched) {
			t.Errorf("matched = %v, want %v", matched, wantMatched)
		}
	})
}

// TestLookupFromNegativeCache is P4 and scenario 4: a lookup with zero
// matches sets the negative-cache sentinel, and a repeat lookup short
// circuits without walking the full index.
func TestLookupFromNegativeCache(t *testing.T) {
	t.Parallel()
	td := buildTestDict(t, codecIdentity, 1)
	d := td.open(t, WithoutCache())
	defer d.Close(false)

	matched, skipped := collectLookup(d.LookupFrom("zz"))
	if len(matched) != 0 || len(skipped) != 0 {
		t.Fatalf("expected empty sequence for \"zz\", got matched=%v skipped=%v", matched, skipped)
	}

	ptr, ok := d.shortIndex.lookup(2, "zz")
	if !ok || ptr != negativeCache {
		t.Fatalf("level[2][\"zz\"] = (%d, %v), want (-1, true)", ptr, ok)
	}

	// Second call must not walk the full index: pickStartingPoint reports the
	// negativeCache sentinel as the deepest hit, LookupFrom treats it as a
	// known-empty result, and the iterator should be empty without reading
	// any entries. Closing the underlying file first proves no reads occur.
	it := d.LookupFrom("zz")
	d.file.Close()
	_, ok2 := it.Next()
	if ok2 {
		t.Fatalf("expected empty sequence on repeat lookup of a negatively-cached prefix")
	}
}

// TestLookupFromNegativeCacheOverridesShallowerRealEntry is the P4 regression
// reproduced against LookupFrom directly: once "cz" has been cached as a
// negative result (level 2), a later lookup_from("cz") must short-circuit
// even though level 1 still holds a real pointer for "c" and would otherwise
// be picked as a shallower fallback.
func TestLookupFromNegativeCacheOverridesShallowerRealEntry(t *testing.T) {
	t.Parallel()
	td := buildTestDict(t, codecIdentity, 1)
	d := td.open(t, WithoutCache())
	defer d.Close(false)

	// First lookup walks the full index from "c" (level 1's real pointer)
	// and finds nothing starting with "cz", caching level[2]["cz"] = -1.
	matched, _ := collectLookup(d.LookupFrom("cz"))
	if len(matched) != 0 {
		t.Fatalf("expected no matches for \"cz\", got %v", matched)
	}
	ptr, ok := d.shortIndex.lookup(2, "cz")
	if !ok || ptr != negativeCache {
		t.Fatalf("level[2][\"cz\"] = (%d, %v), want (-1, true)", ptr, ok)
	}

	// Second lookup must short-circuit on the level-2 sentinel rather than
	// falling back to level 1's real pointer for "c" and re-walking the
	// full index.
	it := d.LookupFrom("cz")
	d.file.Close()
	_, ok2 := it.Next()
	if ok2 {
		t.Fatalf("expected empty sequence on repeat lookup of a negatively-cached deeper prefix")
	}
}

// TestLookupFromPrefixCorrectness is P3: for a stored word w and a prefix p
// of w, lookup_from(p) eventually emits Matched(w, ...) before any Skipped
// word that does not begin with p.
func TestLookupFromPrefixCorrectness(t *testing.T) {
	t.Parallel()
	td := buildTestDict(t, codecIdentity, 1)
	d := td.open(t, WithoutCache())
	defer d.Close(false)

	it := d.LookupFrom("c")
	sawCat := false
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		if item.Kind == KindSkipped && !hasPrefix(item.Skipped.Word, "c") {
			t.Fatalf("skipped word %q does not start with requested prefix", item.Skipped.Word)
		}
		if item.Kind == KindMatched && item.Matched.Word == "cat" {
			sawCat = true
		}
	}
	if !sawCat {
		t.Fatalf("expected to match \"cat\" for prefix \"c\"")
	}
}

// TestReadArticle is scenario 5: read_article returns the original
// plaintext regardless of codec.
func TestReadArticle(t *testing.T) {
	t.Parallel()
	for _, codecID := range []byte{codecIdentity, codecZlib, codecBzip2} {
		codecID := codecID
		t.Run(codecName(codecID), func(t *testing.T) {
			t.Parallel()
			td := buildTestDict(t, codecID, 1)
			d := td.open(t, WithoutCache())
			defer d.Close(false)

			// The walk starts at level[1]["c"], so "cat" is emitted as
			// Skipped before "car" is Matched.
			it := d.LookupFrom("car")
			var item LookupItem
			for {
				next, ok := it.Next()
				if !ok {
					t.Fatalf("expected a match for \"car\"")
				}
				if next.Kind == KindMatched {
					item = next
					break
				}
			}
			got, err := item.Matched.ReadArticle()
			if err != nil {
				t.Fatalf("ReadArticle: %v", err)
			}
			if string(got) != td.articleText["car"] {
				t.Errorf("ReadArticle = %q, want %q", got, td.articleText["car"])
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
