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
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/sergi/go-diff/diffmatchpatch"

	"znkr.io/merge/internal/config"
	"znkr.io/merge/internal/normalize"
)

// Span describes a changed range of characters within a line.
type Span struct {
	Start, End  int  // Rune offsets into the line, End is exclusive.
	Kind        Kind // Modify, or Insert and Delete if the change is empty on one side.
	Unimportant bool // Set if the range is matched by an unimportant pattern.
}

// Intraline compares two lines that belong to the same hunk character by character and returns the
// changed ranges for both lines. Both results have the same number of change regions, the i-th
// region on the left corresponds to the i-th region on the right. A region is split into several
// spans if it is partially matched by an [Unimportant] pattern.
//
// Nothing is reported if the lines are equal, one of them is empty, or the lines are too different
// to produce a meaningful result (see [IntralineThresholds]).
//
// The following options are supported: [merge.IgnoreCRLF], [merge.IgnoreCase],
// [merge.IgnoreWhitespace], [merge.ForceLineEnding], [merge.IntralineThresholds],
// [merge.Unimportant]
func Intraline(a, b string, opts ...Option) (left, right []Span, err error) {
	cfg, err := config.FromOptions(opts, config.Normalization|config.Intraline|config.Unimportant)
	if err != nil {
		return nil, nil, err
	}
	pa, pb := prepareLine(a, cfg), prepareLine(b, cfg)
	if pa == "" || pb == "" || pa == pb {
		return nil, nil, nil
	}
	regions, ratio := charRegions(pa, pb, cfg.IntralineCombine)
	if ratio <= cfg.IntralineThreshold {
		return nil, nil, nil
	}

	res := make([]*regexp2.Regexp, 0, len(cfg.Unimportant))
	for _, p := range cfg.Unimportant {
		re, err := regexp2.Compile(p, regexp2.None)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: unimportant pattern %q: %v", ErrInvalidConfig, p, err)
		}
		res = append(res, re)
	}
	ua, err := unimportant(a, res)
	if err != nil {
		return nil, nil, err
	}
	ub, err := unimportant(b, res)
	if err != nil {
		return nil, nil, err
	}

	ra, rb := []rune(pa), []rune(pb)
	for _, r := range regions {
		if cfg.IgnoreWhitespace != 0 && blank(ra[r.a0:r.a1]) && blank(rb[r.b0:r.b1]) {
			continue
		}
		ka, kb := Modify, Modify
		switch {
		case r.a0 == r.a1:
			ka, kb = Delete, Insert
		case r.b0 == r.b1:
			ka, kb = Insert, Delete
		}
		left = append(left, split(r.a0, r.a1, ka, ua)...)
		right = append(right, split(r.b0, r.b1, kb, ub)...)
	}
	return left, right, nil
}

// prepareLine applies line ending and case rules. Unlike the preparation for line comparison, it
// never changes the number of runes before the line terminator.
func prepareLine(line string, cfg config.Config) string {
	line = normalize.Terminators(line, cfg.LineEnding)
	if cfg.IgnoreCRLF {
		line = normalize.Terminators(line, config.LineEndingUnix)
	}
	if cfg.IgnoreCase {
		line = strings.Map(unicode.ToLower, line)
	}
	return line
}

// region is a pair of changed rune ranges [a0, a1) and [b0, b1).
type region struct {
	a0, a1, b0, b1 int
}

// charRegions computes the changed regions between a and b, combining regions that are at most
// combine runes apart on the left. It also returns the similarity of a and b in percent.
func charRegions(a, b string, combine int) ([]region, float64) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	var regions []region
	i, j, equal := 0, 0, 0
	open := false
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			i += n
			j += n
			equal += n
			open = false
			continue
		}
		if !open {
			if k := len(regions) - 1; k >= 0 && i-regions[k].a1 <= combine {
				open = true
			} else {
				regions = append(regions, region{i, i, j, j})
				open = true
			}
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			i += n
		case diffmatchpatch.DiffInsert:
			j += n
		}
		r := &regions[len(regions)-1]
		r.a1, r.b1 = i, j
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return regions, 200 * float64(equal) / float64(total)
}

// unimportant returns the rune ranges of line matched by the capture groups of res, or by the
// whole match for patterns without groups.
func unimportant(line string, res []*regexp2.Regexp) ([][2]int, error) {
	var out [][2]int
	for _, re := range res {
		m, err := re.FindStringMatch(line)
		for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
			groups := m.Groups()
			if len(groups) == 1 {
				out = append(out, [2]int{m.Index, m.Index + m.Length})
				continue
			}
			for _, g := range groups[1:] {
				if len(g.Captures) > 0 {
					out = append(out, [2]int{g.Index, g.Index + g.Length})
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("matching unimportant pattern %q: %v", re.String(), err)
		}
	}
	slices.SortFunc(out, func(x, y [2]int) int { return x[0] - y[0] })
	return out, nil
}

// split splits [lo, hi) into important and unimportant spans.
func split(lo, hi int, kind Kind, ranges [][2]int) []Span {
	if lo == hi {
		return []Span{{Start: lo, End: hi, Kind: kind}}
	}
	var out []Span
	pos := lo
	for _, r := range ranges {
		s, e := max(r[0], pos), min(r[1], hi)
		if s >= e {
			continue
		}
		if pos < s {
			out = append(out, Span{Start: pos, End: s, Kind: kind})
		}
		out = append(out, Span{Start: s, End: e, Kind: kind, Unimportant: true})
		pos = e
	}
	if pos < hi {
		out = append(out, Span{Start: pos, End: hi, Kind: kind})
	}
	return out
}

func blank(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
