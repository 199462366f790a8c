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

	"github.com/golang/glog"

	"znkr.io/merge/internal/config"
	"znkr.io/merge/internal/match"
	"znkr.io/merge/internal/normalize"
	"znkr.io/merge/internal/rvecs"
)

// Side describes the lines of one text that belong to a hunk.
//
// Lines are numbered starting at 1. A side that doesn't contain any lines is a gap, it has End == 0
// and Start is the position where the lines of the other side would be inserted.
type Side struct {
	Start, End int  // First and last line, End == 0 for a gap.
	Missing    int  // Number of lines the other side has in excess of this one, can be negative.
	Kind       Kind // Kind of change on this side.
}

// Size returns the number of lines on this side.
func (s Side) Size() int {
	if s.End == 0 {
		return 0
	}
	return s.End - s.Start + 1
}

// lines returns the range of line numbers covered by s. A gap covers its position.
func (s Side) lines() (lo, hi int) {
	if s.End == 0 {
		return s.Start, s.Start
	}
	return s.Start, s.End
}

func overlaps(a, b Side) bool {
	alo, ahi := a.lines()
	blo, bhi := b.lines()
	return alo <= bhi && blo <= ahi
}

// Hunk describes a contiguous block of differences between two texts.
//
//   - For Insert, Left is a gap and Right contains the inserted lines.
//   - For Delete, Left contains the deleted lines and Right is a gap.
//   - For Modify, both sides contain lines.
type Hunk struct {
	Left, Right Side
	Kind        Kind
}

// Diff compares a and b line by line and returns the hunks necessary to convert one into the
// other. If a and b are equal after normalization, the result is empty.
//
// The following options are supported: [merge.Matcher], [merge.MaxRecursion], [merge.IgnoreCRLF],
// [merge.IgnoreCase], [merge.IgnoreWhitespace], [merge.ForceLineEnding], [merge.SplitImbalanced]
func Diff(a, b string, opts ...Option) ([]Hunk, error) {
	var out []Hunk
	err := DiffFunc(a, b, func(h Hunk) bool {
		out = append(out, h)
		return true
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DiffFunc is like [Diff] but calls yield for every hunk as soon as it is computed. If yield
// returns false, the comparison stops without an error.
//
// If an error is returned, hunks that were already passed to yield remain valid but the result is
// incomplete.
func DiffFunc(a, b string, yield func(Hunk) bool, opts ...Option) error {
	cfg, err := config.FromOptions(opts, config.Matcher|config.MaxRecursion|config.Normalization|config.SplitImbalanced)
	if err != nil {
		return err
	}
	d := newDiffer(cfg)
	x, err := normalize.Lines(a, cfg)
	if err != nil {
		return err
	}
	y, err := normalize.Lines(b, cfg)
	if err != nil {
		return err
	}
	n := 0
	err = d.diff(x, y, cfg.SplitImbalanced, func(h Hunk) bool {
		n++
		return yield(h)
	})
	glog.V(1).Infof("diff: %d lines vs %d lines, %d hunks", len(x), len(y), n)
	return err
}

// LeftSides returns the left sides of all hunks.
func LeftSides(hunks []Hunk) []Side {
	out := make([]Side, len(hunks))
	for i, h := range hunks {
		out[i] = h.Left
	}
	return out
}

// RightSides returns the right sides of all hunks.
func RightSides(hunks []Hunk) []Side {
	out := make([]Side, len(hunks))
	for i, h := range hunks {
		out[i] = h.Right
	}
	return out
}

// newMatcher is replaced in tests.
var newMatcher = match.New

// Probe used to detect where the matcher places gaps.
const probeA, probeB = "a\nb\n\\c\n\\d", "a\n\\c\n\\d"

type differ struct {
	matcher match.Matcher
	zero    int // Correction applied to the start of a gap.
}

func newDiffer(cfg config.Config) *differ {
	d := &differ{matcher: newMatcher(cfg)}
	x := normalize.SplitLines(probeA + "\n" + normalize.Sentinel)
	y := normalize.SplitLines(probeB + "\n" + normalize.Sentinel)
	d.diff(x, y, false, func(h Hunk) bool {
		if h.Left.Start != h.Right.Start {
			d.zero = 1
		}
		return false
	})
	glog.V(2).Infof("diff: %v matcher, zero offset %d", cfg.Algorithm, d.zero)
	return d
}

// diff compares the normalized lines x and y and calls yield for every hunk.
func (d *differ) diff(x, y []string, split bool, yield func(Hunk) bool) error {
	rx, ry, err := rvecs.FromPairs(len(x), len(y), d.matcher.Match(x, y))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMatcher, err)
	}
	for h := range rvecs.Hunks(rx, ry, 0) {
		s, nx := h.S0+1, h.S1-h.S0
		t, ny := h.T0+1, h.T1-h.T0
		switch {
		case split && 0 < nx && nx < ny:
			if !yield(d.hunk(s, nx, t, nx)) || !yield(d.hunk(s+nx-d.zero, 0, t+nx, ny-nx)) {
				return nil
			}
		case split && 0 < ny && ny < nx:
			if !yield(d.hunk(s, ny, t, ny)) || !yield(d.hunk(s+ny, nx-ny, t+ny-d.zero, 0)) {
				return nil
			}
		default:
			if !yield(d.hunk(s, nx, t, ny)) {
				return nil
			}
		}
	}
	return nil
}

// hunk creates a hunk from a start line and the number of lines on each side.
func (d *differ) hunk(s, nx, t, ny int) Hunk {
	h := Hunk{
		Left:  d.side(s, nx, ny, Modify),
		Right: d.side(t, ny, nx, Modify),
		Kind:  Modify,
	}
	switch {
	case nx == 0:
		h.Left.Kind, h.Right.Kind, h.Kind = Delete, Insert, Insert
	case ny == 0:
		h.Left.Kind, h.Right.Kind, h.Kind = Insert, Delete, Delete
	}
	return h
}

func (d *differ) side(start, size, other int, kind Kind) Side {
	s := Side{Start: start, End: start + size - 1, Missing: other - size, Kind: kind}
	if s.End < s.Start {
		s.End = 0
	}
	if s.End == 0 {
		s.Start += d.zero
	}
	return s
}
