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

	"znkr.io/merge/internal/config"
)

// Option configures the behavior of comparison functions.
type Option = config.Option

// ErrInvalidConfig is returned if the options describe a configuration that can't be used.
var ErrInvalidConfig = config.ErrInvalid

// ErrMatcher is returned if the line matcher produced matches that can't be turned into hunks.
var ErrMatcher = errors.New("line matcher failed")

// Algorithm selects a line matcher.
type Algorithm = config.Algorithm

const (
	// General matches the longest common blocks of lines first and ignores very frequent lines
	// when comparing large texts.
	General = config.General

	// Patience anchors the comparison on lines that occur exactly once in both texts. It produces
	// more readable diffs for source code, especially when blocks were moved. This is the default.
	Patience = config.Patience
)

// Whitespace is a set of whitespace positions.
type Whitespace = config.Whitespace

const (
	WhitespaceBegin  = config.WhitespaceBegin  // Leading whitespace of a line
	WhitespaceMiddle = config.WhitespaceMiddle // Runs of whitespace between words
	WhitespaceEnd    = config.WhitespaceEnd    // Trailing whitespace of a line
)

// LineEnding is a line terminator style.
type LineEnding = config.LineEnding

const (
	LineEndingUnix    = config.LineEndingUnix    // \n
	LineEndingWindows = config.LineEndingWindows // \r\n
	LineEndingCR      = config.LineEndingCR      // \r
)

// Matcher selects the line matcher. The default is [Patience].
func Matcher(a Algorithm) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Algorithm = a
		return config.Matcher
	}
}

// MaxRecursion limits how deep the patience matcher searches for unique lines between anchors.
// Beyond that depth, only common leading and trailing lines are matched. The default is 10.
func MaxRecursion(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxRecursion = n
		return config.MaxRecursion
	}
}

// IgnoreCRLF controls if \r\n, \r and \n compare equal. The default is true.
func IgnoreCRLF(ignore bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreCRLF = ignore
		return config.IgnoreCRLF
	}
}

// IgnoreCase compares lines without regard to letter case.
func IgnoreCase() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreCase = true
		return config.IgnoreCase
	}
}

// IgnoreWhitespace ignores whitespace at the given positions. Ignoring [WhitespaceMiddle] collapses
// runs of whitespace between words into a single space, so that word boundaries still count.
func IgnoreWhitespace(ws Whitespace) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreWhitespace = ws
		return config.IgnoreWhitespace
	}
}

// ForceLineEnding converts all line terminators to the given style before comparison. [Merge]
// also uses this style for the merged text.
func ForceLineEnding(le LineEnding) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.LineEnding = le
		return config.ForceLineEnding
	}
}

// SplitImbalanced splits hunks that have more lines on one side than on the other into a
// [Modify] hunk covering the lines both sides have and a pure [Insert] or [Delete] hunk for the
// remaining lines.
func SplitImbalanced() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.SplitImbalanced = true
		return config.SplitImbalanced
	}
}

// IntralineThresholds configures [Intraline]. Changes are only reported for lines that are more
// than changes percent similar (default 60) and change regions that are at most combine characters
// apart are reported as one (default 3).
func IntralineThresholds(changes float64, combine int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IntralineThreshold = changes
		cfg.IntralineCombine = combine
		return config.Intraline
	}
}

// Unimportant marks intraline changes matched by any of the regular expressions as unimportant.
// If a pattern has capture groups, only the groups are unimportant, otherwise the whole match is.
// Patterns use the syntax of [github.com/dlclark/regexp2].
func Unimportant(patterns ...string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Unimportant = append(cfg.Unimportant, patterns...)
		return config.Unimportant
	}
}
