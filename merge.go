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
	"cmp"
	"slices"
	"strings"

	"github.com/golang/glog"

	"znkr.io/merge/internal/config"
	"znkr.io/merge/internal/normalize"
)

// Change describes a region where their and mine differ in a three-way merge.
type Change struct {
	Their, Mine Side

	// The base lines that were changed by their or mine edit in this region, nil if that side
	// didn't change the base here.
	TheirBase, MineBase *Side

	// Set if both sides changed the same base lines differently. Conflicting changes don't
	// contribute text to the merged result.
	IsConflict bool
}

// Merged is the result of a three-way merge.
type Merged struct {
	Text  string
	Hunks []Side // One hunk per change, in merged text line numbers.
}

// Merge combines the edits that led from base to their and from base to mine. It returns the
// regions where their and mine differ and the merged text.
//
// A region that was only changed on one side takes the text from that side. Regions that were
// changed on both sides are conflicts; the merged text contains neither version and the merged
// hunk is a gap with Missing set to the number of lines to reserve for the resolution. Merged lines
// keep their line terminators unless [merge.ForceLineEnding] is set.
//
// The following options are supported: [merge.Matcher], [merge.MaxRecursion], [merge.IgnoreCRLF],
// [merge.IgnoreCase], [merge.IgnoreWhitespace], [merge.ForceLineEnding]
func Merge(their, base, mine string, opts ...Option) ([]Change, Merged, error) {
	var changes []Change
	merged, err := MergeFunc(their, base, mine, func(c Change) bool {
		changes = append(changes, c)
		return true
	}, opts...)
	if err != nil {
		return nil, Merged{}, err
	}
	return changes, merged, nil
}

// MergeFunc is like [Merge] but calls yield for every change in order. If yield returns false, the
// merge stops and returns an empty result without an error.
func MergeFunc(their, base, mine string, yield func(Change) bool, opts ...Option) (Merged, error) {
	cfg, err := config.FromOptions(opts, config.Matcher|config.MaxRecursion|config.Normalization)
	if err != nil {
		return Merged{}, err
	}
	b, err := newMergeBuilder(their, base, mine, cfg)
	if err != nil {
		return Merged{}, err
	}
	changes, err := b.correlate()
	if err != nil {
		return Merged{}, err
	}
	conflicts := 0
	for _, c := range changes {
		c = b.verify(c)
		c = align(c)
		b.assemble(c)
		if c.IsConflict {
			conflicts++
		}
		glog.V(2).Infof("merge: their %v, mine %v, conflict %t", c.Their, c.Mine, c.IsConflict)
		if !yield(c) {
			return Merged{}, nil
		}
	}
	m := b.finish()
	glog.V(1).Infof("merge: %d changes, %d conflicts", len(changes), conflicts)
	return m, nil
}

// mergeBuilder owns all state of a single merge.
type mergeBuilder struct {
	d *differ

	// Normalized lines used for comparison.
	their, base, mine []string

	// Original lines used to assemble the merged text, each with a trailing guard line.
	theirText, mineText []string

	merged     []string
	hunks      []Side
	mineActive bool // Unchanged text is taken from mine, otherwise from their.
	last       *Change
	lastEnd    int
}

func newMergeBuilder(their, base, mine string, cfg config.Config) (*mergeBuilder, error) {
	b := &mergeBuilder{
		d:          newDiffer(cfg),
		mineActive: true,
	}
	var err error
	for _, p := range []struct {
		text  string
		lines *[]string
	}{
		{their, &b.their},
		{base, &b.base},
		{mine, &b.mine},
	} {
		if *p.lines, err = normalize.Lines(p.text, cfg); err != nil {
			return nil, err
		}
	}
	b.theirText = append(normalize.SplitLines(normalize.Terminators(their, cfg.LineEnding)), "\n")
	b.mineText = append(normalize.SplitLines(normalize.Terminators(mine, cfg.LineEnding)), "\n")
	return b, nil
}

// correlate compares their and mine and finds the base changes of both sides for every
// difference. The result is ordered by the position in their.
func (b *mergeBuilder) correlate() ([]Change, error) {
	theirBase, err := b.collect(b.their)
	if err != nil {
		return nil, err
	}
	mineBase, err := b.collect(b.mine)
	if err != nil {
		return nil, err
	}

	var changes []Change
	err = b.d.diff(b.their, b.mine, false, func(h Hunk) bool {
		c := Change{
			Their:     h.Left,
			Mine:      h.Right,
			TheirBase: baseOf(theirBase, h.Left),
			MineBase:  baseOf(mineBase, h.Right),
		}
		if c.TheirBase != nil && c.MineBase != nil && (overlaps(*c.TheirBase, *c.MineBase) || overlaps(c.Their, c.Mine)) {
			c.Their.Kind, c.Mine.Kind = Conflict, Conflict
			c.IsConflict = true
		}
		changes = append(changes, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(changes, func(x, y Change) int {
		return cmp.Compare(x.Their.Start, y.Their.Start)
	})
	return changes, nil
}

// collect returns all hunks between lines and base.
func (b *mergeBuilder) collect(lines []string) ([]Hunk, error) {
	var out []Hunk
	err := b.d.diff(lines, b.base, false, func(h Hunk) bool {
		out = append(out, h)
		return true
	})
	return out, err
}

// baseOf returns the base side of the first hunk that overlaps s.
func baseOf(hunks []Hunk, s Side) *Side {
	for _, h := range hunks {
		if overlaps(h.Left, s) {
			base := h.Right
			return &base
		}
	}
	return nil
}

// verify clears the conflict of a change where both sides made the same edit.
func (b *mergeBuilder) verify(c Change) Change {
	t := strings.Join(slice(b.their, c.Their), "")
	m := strings.Join(slice(b.mine, c.Mine), "")
	if t != "" && t == m {
		c.Their.Kind, c.Mine.Kind = Modify, Modify
		c.IsConflict = false
	}
	return c
}

// align sets the number of missing lines on both sides, so that both sides have the same size
// when padded.
func align(c Change) Change {
	n := max(c.Their.Size(), c.Mine.Size())
	c.Their.Missing = n - c.Their.Size()
	c.Mine.Missing = n - c.Mine.Size()
	return c
}

func (b *mergeBuilder) side(c *Change) Side {
	if b.mineActive {
		return c.Mine
	}
	return c.Their
}

func (b *mergeBuilder) text() []string {
	if b.mineActive {
		return b.mineText
	}
	return b.theirText
}

// assemble appends the unchanged text before c and the text of c to the merged text.
func (b *mergeBuilder) assemble(c Change) {
	if !c.IsConflict {
		// The side without a base change is unchanged here, the edit comes from their unless
		// mine changed the base.
		b.mineActive = c.MineBase != nil
	}
	w := b.side(&c)
	text := b.text()

	from := 1
	if b.last != nil {
		lw := b.side(b.last)
		from = lw.End + 1
		if lw.End == 0 {
			from = lw.Start
		}
	}
	b.merged = append(b.merged, clamp(text, from-1, w.Start-1)...)

	n := len(b.merged)
	h := w
	if h.End > 0 {
		h.End = n + (w.End - w.Start) + 1
	}
	h.Start = n + 1
	if !c.IsConflict {
		if w.End != 0 {
			b.merged = append(b.merged, clamp(text, w.Start-1, w.End)...)
		}
	} else {
		h.Missing = max(c.Their.Size(), c.Mine.Size())
		h.End = 0
	}
	b.hunks = append(b.hunks, h)

	b.last = &c
	b.lastEnd = w.End
	if w.End == 0 {
		b.lastEnd = w.Start
	}
}

// finish appends the text after the last change and reconciles the trailing newline.
func (b *mergeBuilder) finish() Merged {
	b.theirText = b.theirText[:len(b.theirText)-1]
	b.mineText = b.mineText[:len(b.mineText)-1]

	if b.last != nil {
		off := 0
		if b.side(b.last).End == 0 {
			off = 1
		}
		text := b.text()
		b.merged = append(b.merged, clamp(text, b.lastEnd-off, len(text))...)
	} else {
		b.merged = slices.Clone(b.mineText)
	}

	if n := len(b.merged); n > 0 && b.merged[n-1] != "" {
		theirNL := b.theirText[len(b.theirText)-1] == ""
		mineNL := b.mineText[len(b.mineText)-1] == ""
		if theirNL != mineNL && normalize.HasTrailingTerminator(b.merged[n-1]) {
			b.merged[n-1] = normalize.TrimTerminator(b.merged[n-1])
		}
	}
	return Merged{Text: strings.Join(b.merged, ""), Hunks: b.hunks}
}

// slice returns the lines covered by s.
func slice(lines []string, s Side) []string {
	if s.End == 0 {
		return nil
	}
	return clamp(lines, s.Start-1, s.End)
}

// clamp returns lines[lo:hi] with lo and hi clamped to the valid range. The result is empty if
// lo >= hi.
func clamp(lines []string, lo, hi int) []string {
	lo = min(max(lo, 0), len(lines))
	hi = min(max(hi, lo), len(lines))
	return lines[lo:hi]
}
