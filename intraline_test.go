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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntraline(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		opts      []Option
		wantLeft  []Span
		wantRight []Span
	}{
		{
			name:      "modify",
			a:         "foo(bar)",
			b:         "foo(baz)",
			wantLeft:  []Span{{6, 7, Modify, false}},
			wantRight: []Span{{6, 7, Modify, false}},
		},
		{
			name:      "unimportant-group",
			a:         "foo(bar)",
			b:         "foo(baz)",
			opts:      []Option{Unimportant(`ba(r|z)`)},
			wantLeft:  []Span{{6, 7, Modify, true}},
			wantRight: []Span{{6, 7, Modify, true}},
		},
		{
			name:      "unimportant-partial",
			a:         "value: 1",
			b:         "value: 2.5",
			opts:      []Option{Unimportant(`\.\d+`)},
			wantLeft:  []Span{{7, 8, Modify, false}},
			wantRight: []Span{{7, 8, Modify, false}, {8, 10, Modify, true}},
		},
		{
			name:      "combine",
			a:         "abcdefgh",
			b:         "aXcdeYgh",
			wantLeft:  []Span{{1, 6, Modify, false}},
			wantRight: []Span{{1, 6, Modify, false}},
		},
		{
			name:      "no-combine",
			a:         "abcdefgh",
			b:         "aXcdeYgh",
			opts:      []Option{IntralineThresholds(60, 0)},
			wantLeft:  []Span{{1, 2, Modify, false}, {5, 6, Modify, false}},
			wantRight: []Span{{1, 2, Modify, false}, {5, 6, Modify, false}},
		},
		{
			name:      "insert",
			a:         "abcdef",
			b:         "abcXYdef",
			wantLeft:  []Span{{3, 3, Delete, false}},
			wantRight: []Span{{3, 5, Insert, false}},
		},
		{
			name:      "delete",
			a:         "abcXYdef",
			b:         "abcdef",
			wantLeft:  []Span{{3, 5, Insert, false}},
			wantRight: []Span{{3, 3, Delete, false}},
		},
		{
			name: "too-different",
			a:    "abc",
			b:    "xyz",
		},
		{
			name: "equal",
			a:    "same",
			b:    "same",
		},
		{
			name: "empty",
			a:    "",
			b:    "something",
		},
		{
			name: "ignore-case",
			a:    "Hello",
			b:    "hello",
			opts: []Option{IgnoreCase()},
		},
		{
			name: "ignore-crlf",
			a:    "line\r\n",
			b:    "line\n",
		},
		{
			name:      "runes",
			a:         "über alles",
			b:         "über Alles",
			wantLeft:  []Span{{5, 6, Modify, false}},
			wantRight: []Span{{5, 6, Modify, false}},
		},
		{
			name:      "ignore-whitespace",
			a:         "call(a,b)",
			b:         "call(a, b)",
			opts:      []Option{IgnoreWhitespace(WhitespaceMiddle)},
			wantLeft:  nil,
			wantRight: nil,
		},
		{
			name:      "ignore-whitespace-keeps-other-changes",
			a:         "call(a,b)",
			b:         "call(a, c)",
			opts:      []Option{IgnoreWhitespace(WhitespaceMiddle)},
			wantLeft:  []Span{{7, 8, Modify, false}},
			wantRight: []Span{{7, 9, Modify, false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, err := Intraline(tt.a, tt.b, tt.opts...)
			if err != nil {
				t.Fatalf("Intraline(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantLeft, left); diff != "" {
				t.Errorf("Intraline(%q, %q) left is different [-want,+got]:\n%s", tt.a, tt.b, diff)
			}
			if diff := cmp.Diff(tt.wantRight, right); diff != "" {
				t.Errorf("Intraline(%q, %q) right is different [-want,+got]:\n%s", tt.a, tt.b, diff)
			}
		})
	}
}

func TestIntralineInvalid(t *testing.T) {
	_, _, err := Intraline("a", "b", Unimportant(`(?<=`))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Intraline(...) = %v, want error wrapping %v", err, ErrInvalidConfig)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		ranges [][2]int
		want   []Span
	}{
		{
			name: "no-ranges",
			lo:   2,
			hi:   5,
			want: []Span{{2, 5, Modify, false}},
		},
		{
			name:   "clipped",
			lo:     2,
			hi:     5,
			ranges: [][2]int{{0, 3}, {4, 9}},
			want:   []Span{{2, 3, Modify, true}, {3, 4, Modify, false}, {4, 5, Modify, true}},
		},
		{
			name:   "outside",
			lo:     2,
			hi:     5,
			ranges: [][2]int{{0, 2}, {5, 6}},
			want:   []Span{{2, 5, Modify, false}},
		},
		{
			name:   "overlapping",
			lo:     0,
			hi:     6,
			ranges: [][2]int{{1, 4}, {2, 3}, {3, 5}},
			want:   []Span{{0, 1, Modify, false}, {1, 4, Modify, true}, {4, 5, Modify, true}, {5, 6, Modify, false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := split(tt.lo, tt.hi, Modify, tt.ranges)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("split(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}
