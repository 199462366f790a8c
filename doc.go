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

// Package merge compares line oriented text and merges concurrent edits.
//
// [Diff] compares two texts and describes their differences as hunks, [Merge] combines two edits
// of a common base text into a merged text and reports conflicting regions. [Expand] annotates
// every line of a text with the kind of change it belongs to, inserting placeholder lines where the
// other side has more lines, which is what a side-by-side renderer needs. [Intraline] finds the
// changed characters within a pair of changed lines.
//
// All comparisons are line based. Before comparison, texts are normalized according to the options
// (line terminators, letter case and whitespace) and a sentinel line is appended, so that a missing
// newline at the end of a text is reported as a difference of its own. Line numbers in results
// always refer to the original texts.
//
// Two line matchers are available: a general matcher based on the longest matching blocks and the
// default patience matcher, which anchors the comparison on lines that occur exactly once in both
// texts. See [Matcher].
package merge
