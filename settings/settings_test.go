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

package settings

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"znkr.io/merge"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want func(s *Settings)
	}{
		{
			name: "empty",
			yaml: "",
			want: func(*Settings) {},
		},
		{
			name: "all",
			yaml: `
algorithm: general
ignore_whitespace: [begin, end]
ignore_case: true
ignore_crlf: false
line_endings: Windows
max_recursion: 4
intraline_changes_threshold: 75
intraline_combine_threshold: 1
intraline_unimportant_regexps:
  - '\d+'
`,
			want: func(s *Settings) {
				s.Algorithm = "general"
				s.IgnoreWhitespace = []string{"begin", "end"}
				s.IgnoreCase = true
				s.IgnoreCRLF = false
				s.LineEndings = "Windows"
				s.MaxRecursion = 4
				s.IntralineChangesThreshold = 75
				s.IntralineCombineThreshold = 1
				s.IntralineUnimportantRegexp = []string{`\d+`}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := Default()
			tt.want(&want)
			got, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse(...) failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"algorithm", "algorithm: myers"},
		{"whitespace", "ignore_whitespace: [everywhere]"},
		{"line-endings", "line_endings: mac"},
		{"recursion", "max_recursion: -2"},
		{"threshold", "intraline_changes_threshold: 120"},
		{"regexp", "intraline_unimportant_regexps: ['(']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, merge.ErrInvalidConfig) {
				t.Errorf("Parse(%q) = %v, want error wrapping %v", tt.yaml, err, merge.ErrInvalidConfig)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse([]byte("algorithm: [")); err == nil {
		t.Errorf("Parse(...) succeeded, want error")
	}
}

func TestOptions(t *testing.T) {
	s := Default()
	s.IgnoreCase = true
	opts, err := s.Options()
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	hunks, err := merge.Diff("a\nB\n", "A\nb\n", opts...)
	if err != nil {
		t.Fatalf("Diff(...) failed: %v", err)
	}
	if len(hunks) != 0 {
		t.Errorf("Diff(...) with ignore_case = %v, want no hunks", hunks)
	}

	iopts, err := s.IntralineOptions()
	if err != nil {
		t.Fatalf("IntralineOptions() failed: %v", err)
	}
	left, right, err := merge.Intraline("foo(Bar)", "foo(baz)", iopts...)
	if err != nil {
		t.Fatalf("Intraline(...) failed: %v", err)
	}
	want := []merge.Span{{Start: 6, End: 7, Kind: merge.Modify}}
	if diff := cmp.Diff(want, left); diff != "" {
		t.Errorf("Intraline(...) left is different [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(want, right); diff != "" {
		t.Errorf("Intraline(...) right is different [-want,+got]:\n%s", diff)
	}
}

func TestStore(t *testing.T) {
	var st Store
	if diff := cmp.Diff(Default(), st.Load()); diff != "" {
		t.Errorf("zero Store.Load() is different [-want,+got]:\n%s", diff)
	}

	s := Default()
	s.IgnoreWhitespace = []string{"begin"}
	st.Store(s)
	s.IgnoreWhitespace[0] = "end"

	snap := st.Load()
	snap.IgnoreWhitespace[0] = "middle"
	if got := st.Load().IgnoreWhitespace; !cmp.Equal(got, []string{"begin"}) {
		t.Errorf("Store.Load().IgnoreWhitespace = %q, want [begin]", got)
	}
}

func TestStoreConcurrent(t *testing.T) {
	var st Store
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := Default()
			s.MaxRecursion = i
			s.IgnoreWhitespace = make([]string, i)
			for range 100 {
				st.Store(s)
				got := st.Load()
				// A snapshot is never a mix of two stored values.
				if len(got.IgnoreWhitespace) != got.MaxRecursion {
					t.Errorf("Load() = %+v, inconsistent snapshot", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
