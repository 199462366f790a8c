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

// Package settings holds user settings for comparisons, as read from a YAML file, and converts them
// to options for package [znkr.io/merge].
package settings

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"znkr.io/merge"
	"znkr.io/merge/internal/config"
)

// Settings are the user settings for comparisons.
type Settings struct {
	Algorithm                  string   `yaml:"algorithm"`
	IgnoreWhitespace           []string `yaml:"ignore_whitespace"`
	IgnoreCase                 bool     `yaml:"ignore_case"`
	IgnoreCRLF                 bool     `yaml:"ignore_crlf"`
	LineEndings                string   `yaml:"line_endings"`
	MaxRecursion               int      `yaml:"max_recursion"`
	IntralineChangesThreshold  float64  `yaml:"intraline_changes_threshold"`
	IntralineCombineThreshold  int      `yaml:"intraline_combine_threshold"`
	IntralineUnimportantRegexp []string `yaml:"intraline_unimportant_regexps"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Algorithm:                 "patience",
		IgnoreCRLF:                true,
		MaxRecursion:              10,
		IntralineChangesThreshold: 60,
		IntralineCombineThreshold: 3,
	}
}

// Parse reads settings from YAML. Settings missing in data keep their default value.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %v", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that all settings have known names and usable values. The error wraps
// [merge.ErrInvalidConfig].
func (s Settings) Validate() error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	iopts, err := s.IntralineOptions()
	if err != nil {
		return err
	}
	_, err = config.FromOptions(append(opts, iopts...), ^config.Flag(0))
	return err
}

// Options converts the settings that apply to [merge.Diff] and [merge.Merge] to options. It returns
// an error wrapping [merge.ErrInvalidConfig] for unknown names.
func (s Settings) Options() ([]merge.Option, error) {
	var opts []merge.Option
	switch strings.ToLower(s.Algorithm) {
	case "", "general":
		opts = append(opts, merge.Matcher(merge.General))
	case "patience":
		opts = append(opts, merge.Matcher(merge.Patience))
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", merge.ErrInvalidConfig, s.Algorithm)
	}
	norm, err := s.normalization()
	if err != nil {
		return nil, err
	}
	opts = append(opts, norm...)
	return append(opts, merge.MaxRecursion(s.MaxRecursion)), nil
}

// IntralineOptions converts the settings that apply to [merge.Intraline] to options.
func (s Settings) IntralineOptions() ([]merge.Option, error) {
	opts, err := s.normalization()
	if err != nil {
		return nil, err
	}
	return append(opts,
		merge.IntralineThresholds(s.IntralineChangesThreshold, s.IntralineCombineThreshold),
		merge.Unimportant(s.IntralineUnimportantRegexp...),
	), nil
}

func (s Settings) normalization() ([]merge.Option, error) {
	var ws merge.Whitespace
	for _, name := range s.IgnoreWhitespace {
		switch strings.ToLower(name) {
		case "begin":
			ws |= merge.WhitespaceBegin
		case "middle":
			ws |= merge.WhitespaceMiddle
		case "end":
			ws |= merge.WhitespaceEnd
		default:
			return nil, fmt.Errorf("%w: unknown whitespace position %q", merge.ErrInvalidConfig, name)
		}
	}
	opts := []merge.Option{
		merge.IgnoreWhitespace(ws),
		merge.IgnoreCRLF(s.IgnoreCRLF),
	}
	if s.IgnoreCase {
		opts = append(opts, merge.IgnoreCase())
	}

	switch strings.ToLower(s.LineEndings) {
	case "":
	case "unix":
		opts = append(opts, merge.ForceLineEnding(merge.LineEndingUnix))
	case "windows":
		opts = append(opts, merge.ForceLineEnding(merge.LineEndingWindows))
	case "cr":
		opts = append(opts, merge.ForceLineEnding(merge.LineEndingCR))
	default:
		return nil, fmt.Errorf("%w: unknown line endings %q", merge.ErrInvalidConfig, s.LineEndings)
	}
	return opts, nil
}

func (s Settings) clone() Settings {
	s.IgnoreWhitespace = slices.Clone(s.IgnoreWhitespace)
	s.IntralineUnimportantRegexp = slices.Clone(s.IntralineUnimportantRegexp)
	return s
}

// Store holds process-wide settings. It is safe for concurrent use. A comparison should call
// [Store.Load] once at its start and use that snapshot for its whole duration.
//
// The zero value holds the default settings.
type Store struct {
	p atomic.Pointer[Settings]
}

// Load returns a snapshot of the current settings.
func (st *Store) Load() Settings {
	if s := st.p.Load(); s != nil {
		return s.clone()
	}
	return Default()
}

// Store replaces the current settings.
func (st *Store) Store(s Settings) {
	s = s.clone()
	st.p.Store(&s)
}
