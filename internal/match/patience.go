// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import "slices"

// Patience implements patience matching: Lines that appear exactly once in both sequences are
// used as anchors and the longest increasing sequence of anchors is matched. The regions between
// anchors are matched recursively. Regions without anchors are matched by their common prefix or
// suffix.
type Patience struct {
	// Maximum recursion depth. When exhausted, only common prefixes and suffixes are matched.
	MaxDepth int
}

func (p Patience) Match(a, b []string) []Pair {
	return p.recurse(a, b, 0, 0, len(a), len(b), nil, p.MaxDepth)
}

func (p Patience) recurse(a, b []string, alo, blo, ahi, bhi int, matches []Pair, depth int) []Pair {
	if alo == ahi || blo == bhi {
		return matches
	}
	if depth < 0 {
		return p.matchEnds(a, b, alo, blo, ahi, bhi, matches, depth)
	}

	n := len(matches)
	lasta, lastb := alo-1, blo-1
	for _, u := range uniqueLCS(a[alo:ahi], b[blo:bhi]) {
		apos, bpos := u.A+alo, u.B+blo
		if lasta+1 != apos || lastb+1 != bpos {
			matches = p.recurse(a, b, lasta+1, lastb+1, apos, bpos, matches, depth-1)
		}
		lasta, lastb = apos, bpos
		matches = append(matches, Pair{apos, bpos})
	}
	if len(matches) > n {
		return p.recurse(a, b, lasta+1, lastb+1, ahi, bhi, matches, depth-1)
	}
	return p.matchEnds(a, b, alo, blo, ahi, bhi, matches, depth)
}

// matchEnds matches the common prefix or, if there is none, the common suffix of a[alo:ahi] and
// b[blo:bhi] and recurses into the remainder.
func (p Patience) matchEnds(a, b []string, alo, blo, ahi, bhi int, matches []Pair, depth int) []Pair {
	switch {
	case a[alo] == b[blo]:
		for alo < ahi && blo < bhi && a[alo] == b[blo] {
			matches = append(matches, Pair{alo, blo})
			alo++
			blo++
		}
		return p.recurse(a, b, alo, blo, ahi, bhi, matches, depth-1)

	case a[ahi-1] == b[bhi-1]:
		nahi, nbhi := ahi-1, bhi-1
		for nahi > alo && nbhi > blo && a[nahi-1] == b[nbhi-1] {
			nahi--
			nbhi--
		}
		matches = p.recurse(a, b, alo, blo, nahi, nbhi, matches, depth-1)
		for i := range ahi - nahi {
			matches = append(matches, Pair{nahi + i, nbhi + i})
		}
	}
	return matches
}

// uniqueLCS returns the longest common subsequence of the lines that appear exactly once in a and
// once in b.
func uniqueLCS(a, b []string) []Pair {
	// Position of every line in a, or -1 if it's not unique.
	index := make(map[string]int, len(a))
	for i, line := range a {
		if _, ok := index[line]; ok {
			index[line] = -1
		} else {
			index[line] = i
		}
	}

	// Map from b positions to a positions for unique lines.
	btoa := make([]int, len(b))
	seen := make(map[string]int)
	for pos, line := range b {
		btoa[pos] = -1
		apos, ok := index[line]
		if !ok || apos < 0 {
			continue
		}
		if prev, ok := seen[line]; ok {
			btoa[prev] = -1
			index[line] = -1
			continue
		}
		seen[line] = pos
		btoa[pos] = apos
	}

	// Patience sort: tops holds the a position at the top of every pile, lasts the corresponding
	// b position, and backs links every b position to the top of the previous pile at the time it
	// was placed.
	var tops, lasts []int
	backs := make([]int, len(b))
	for bpos, apos := range btoa {
		if apos < 0 {
			continue
		}
		k, _ := slices.BinarySearch(tops, apos)
		backs[bpos] = -1
		if k > 0 {
			backs[bpos] = lasts[k-1]
		}
		if k < len(tops) {
			tops[k] = apos
			lasts[k] = bpos
		} else {
			tops = append(tops, apos)
			lasts = append(lasts, bpos)
		}
	}
	if len(lasts) == 0 {
		return nil
	}

	result := make([]Pair, len(lasts))
	for i, bpos := len(lasts)-1, lasts[len(lasts)-1]; bpos >= 0; i, bpos = i-1, backs[bpos] {
		result[i] = Pair{btoa[bpos], bpos}
	}
	return result
}
