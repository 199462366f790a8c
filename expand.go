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

package merge

import (
	"slices"
	"strings"

	"znkr.io/merge/internal/normalize"
)

// Line annotates a line of the text returned by [Expand].
type Line struct {
	Index int  // 0-based line index in the expanded text.
	Kind  Kind // Kind of the line, Missing for placeholders.
	Group Kind // Kind of the hunk side the line belongs to.
}

// Expand annotates the lines of text that belong to sides and inserts an empty placeholder line for
// every line the other side has in excess (see [Side.Missing]). Sides must be ordered and must
// refer to text, e.g. the result of [LeftSides] for the first input of [Diff].
//
// It returns the expanded text and one group of annotated lines per side. Lines of a side beyond
// the number of lines on the other side are annotated as [Insert].
func Expand(text string, sides []Side) (string, [][]Line) {
	lines := normalize.SplitLines(text)
	groups := make([][]Line, 0, len(sides))
	offset := 0
	for _, s := range sides {
		group := []Line{}
		gap := offset + s.Start - 1
		if s.End != 0 {
			first, last := offset+s.Start-1, offset+s.End-1
			for i := first; i <= last; i++ {
				kind := s.Kind
				if i > last+s.Missing {
					kind = Insert
				}
				group = append(group, Line{Index: i, Kind: kind, Group: s.Kind})
			}
			gap = last + 1
		}
		if s.Missing > 0 {
			gap = min(max(gap, 0), len(lines))
			lines = slices.Insert(lines, gap, slices.Repeat([]string{"\n"}, s.Missing)...)
			for i := range s.Missing {
				group = append(group, Line{Index: gap + i, Kind: Missing, Group: s.Kind})
			}
			offset += s.Missing
		}
		groups = append(groups, group)
	}
	return strings.Join(lines, ""), groups
}
