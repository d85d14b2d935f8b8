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

// DefaultMaxPerDictionary is the default cap on matches drawn from a single
// Dictionary when fanning out a lookup across a Collection.
const DefaultMaxPerDictionary = 20

// Collection groups Dictionary handles by word language, the
// out-of-scope-for-the-core-but-interface-adjacent façade described by
// spec.md §1/§6. It is a thin, easily-testable grouping layer; the richer
// multi-dictionary UI collection it stands in for belongs outside this
// package.
type Collection struct {
	byLang map[string][]*Dictionary
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{byLang: make(map[string][]*Dictionary)}
}

// Add registers d under its WordLanguage.
func (c *Collection) Add(d *Dictionary) {
	lang := d.WordLanguage()
	c.byLang[lang] = append(c.byLang[lang], d)
}

// Remove unregisters d from its WordLanguage group.
func (c *Collection) Remove(d *Dictionary) {
	lang := d.WordLanguage()
	group := c.byLang[lang]
	for i, candidate := range group {
		if candidate.Equal(d) {
			c.byLang[lang] = append(group[:i], group[i+1:]...)
			break
		}
	}
	if len(c.byLang[lang]) == 0 {
		delete(c.byLang, lang)
	}
}

// Has reports whether d is registered in this Collection.
func (c *Collection) Has(d *Dictionary) bool {
	for _, candidate := range c.byLang[d.WordLanguage()] {
		if candidate.Equal(d) {
			return true
		}
	}
	return false
}

// Languages returns the word languages currently represented.
func (c *Collection) Languages() []string {
	langs := make([]string, 0, len(c.byLang))
	for lang := range c.byLang {
		langs = append(langs, lang)
	}
	return langs
}

// Dictionaries returns the Dictionary handles registered under langs, or all
// of them if langs is empty.
func (c *Collection) Dictionaries(langs ...string) []*Dictionary {
	if len(langs) == 0 {
		var all []*Dictionary
		for _, group := range c.byLang {
			all = append(all, group...)
		}
		return all
	}
	var dicts []*Dictionary
	for _, lang := range langs {
		dicts = append(dicts, c.byLang[lang]...)
	}
	return dicts
}

// Size returns the total number of registered Dictionary handles.
func (c *Collection) Size() int {
	n := 0
	for _, group := range c.byLang {
		n += len(group)
	}
	return n
}

// IsEmpty reports whether the Collection holds no dictionaries.
func (c *Collection) IsEmpty() bool {
	return c.Size() == 0
}

// LookupFrom fans out LookupFrom(prefix) across every Dictionary registered
// under lang, capping the number of Matched items drawn from any single
// dictionary at maxPerDictionary (DefaultMaxPerDictionary if <= 0). Skipped
// items are not capped; they are still useful as densification input for the
// dictionary that produced them.
func (c *Collection) LookupFrom(lang, prefix string, maxPerDictionary int) []LookupItem {
	if maxPerDictionary <= 0 {
		maxPerDictionary = DefaultMaxPerDictionary
	}

	var items []LookupItem
	for _, d := range c.byLang[lang] {
		it := d.LookupFrom(prefix)
		matched := 0
		for {
			item, ok := it.Next()
			if !ok {
				break
			}
			items = append(items, item)
			if item.Kind == KindMatched {
				matched++
				if matched >= maxPerDictionary {
					it.Stop()
					break
				}
			}
		}
	}
	return items
}
