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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// merge.Option.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrInvalid is returned for configurations that can't be used for a comparison.
var ErrInvalid = errors.New("invalid configuration")

// Algorithm selects the line matcher.
type Algorithm int

const (
	// General matching based on the longest common subsequence with junk heuristics.
	General Algorithm = iota

	// Patience matching anchored on lines that are unique in both inputs.
	Patience
)

func (a Algorithm) String() string {
	switch a {
	case General:
		return "general"
	case Patience:
		return "patience"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Whitespace is a set of whitespace positions to ignore.
type Whitespace uint8

const (
	WhitespaceBegin  Whitespace = 1 << iota // Leading whitespace of a line
	WhitespaceMiddle                        // Runs of whitespace between tokens
	WhitespaceEnd                           // Trailing whitespace of a line

	whitespaceAll = WhitespaceBegin | WhitespaceMiddle | WhitespaceEnd
)

func (w Whitespace) String() string {
	if w == 0 {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		w    Whitespace
		name string
	}{
		{WhitespaceBegin, "begin"},
		{WhitespaceMiddle, "middle"},
		{WhitespaceEnd, "end"},
	} {
		if w&p.w != 0 {
			parts = append(parts, p.name)
		}
	}
	if rest := w &^ whitespaceAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// LineEnding is a line terminator style.
type LineEnding int

const (
	LineEndingAsIs    LineEnding = iota // Keep line terminators as they are.
	LineEndingUnix                      // \n
	LineEndingWindows                   // \r\n
	LineEndingCR                        // \r
)

// Terminator returns the line terminator for e, or "" for LineEndingAsIs.
func (e LineEnding) Terminator() string {
	switch e {
	case LineEndingUnix:
		return "\n"
	case LineEndingWindows:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return ""
	}
}

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Line matcher.
	Algorithm Algorithm

	// Maximum recursion depth of the patience matcher.
	MaxRecursion int

	// If set, all line terminators compare equal.
	IgnoreCRLF bool

	// If set, letter case is folded before comparison.
	IgnoreCase bool

	// Whitespace positions that are ignored in comparisons.
	IgnoreWhitespace Whitespace

	// If set, line terminators are converted to this style before comparison.
	LineEnding LineEnding

	// If set, two-way diffs split imbalanced hunks into a change and a pure insertion or deletion.
	SplitImbalanced bool

	// Intraline changes are only reported for lines that are more similar than this percentage.
	IntralineThreshold float64

	// Intraline change regions that are at most this many characters apart are combined.
	IntralineCombine int

	// Regular expressions whose capture groups mark unimportant intraline changes.
	Unimportant []string
}

// Default is the default configuration.
var Default = Config{
	Algorithm:          Patience,
	MaxRecursion:       10,
	IgnoreCRLF:         true,
	IgnoreCase:         false,
	IgnoreWhitespace:   0,
	LineEnding:         LineEndingAsIs,
	SplitImbalanced:    false,
	IntralineThreshold: 60,
	IntralineCombine:   3,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Matcher Flag = 1 << iota
	MaxRecursion
	IgnoreCRLF
	IgnoreCase
	IgnoreWhitespace
	ForceLineEnding
	SplitImbalanced
	Intraline
	Unimportant

	// Normalization collects all flags that influence how text is prepared for comparison.
	Normalization = IgnoreCRLF | IgnoreCase | IgnoreWhitespace | ForceLineEnding
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options. It panics if an option is used that
// is not allowed and returns an error wrapping [ErrInvalid] if the resulting configuration is not
// valid.
func FromOptions(opts []Option, allowed Flag) (Config, error) {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all values in cfg are usable.
func (cfg Config) Validate() error {
	switch {
	case cfg.Algorithm != General && cfg.Algorithm != Patience:
		return fmt.Errorf("%w: unknown algorithm %v", ErrInvalid, cfg.Algorithm)
	case cfg.MaxRecursion < 0:
		return fmt.Errorf("%w: negative recursion depth %d", ErrInvalid, cfg.MaxRecursion)
	case cfg.IgnoreWhitespace&^whitespaceAll != 0:
		return fmt.Errorf("%w: unknown whitespace flags %v", ErrInvalid, cfg.IgnoreWhitespace)
	case cfg.LineEnding < LineEndingAsIs || cfg.LineEnding > LineEndingCR:
		return fmt.Errorf("%w: unknown line ending %d", ErrInvalid, int(cfg.LineEnding))
	case cfg.IntralineThreshold < 0 || cfg.IntralineThreshold > 100:
		return fmt.Errorf("%w: intraline threshold %v not within [0, 100]", ErrInvalid, cfg.IntralineThreshold)
	case cfg.IntralineCombine < 0:
		return fmt.Errorf("%w: negative intraline combine threshold %d", ErrInvalid, cfg.IntralineCombine)
	}
	for _, p := range cfg.Unimportant {
		if _, err := regexp2.Compile(p, regexp2.None); err != nil {
			return fmt.Errorf("%w: unimportant pattern %q: %v", ErrInvalid, p, err)
		}
	}
	return nil
}

func printFlag(flag Flag) string {
	switch flag {
	case Matcher:
		return "merge.Matcher"
	case MaxRecursion:
		return "merge.MaxRecursion"
	case IgnoreCRLF:
		return "merge.IgnoreCRLF"
	case IgnoreCase:
		return "merge.IgnoreCase"
	case IgnoreWhitespace:
		return "merge.IgnoreWhitespace"
	case ForceLineEnding:
		return "merge.ForceLineEnding"
	case SplitImbalanced:
		return "merge.SplitImbalanced"
	case Intraline:
		return "merge.IntralineThresholds"
	case Unimportant:
		return "merge.Unimportant"
	default:
		panic("never reached")
	}
}
