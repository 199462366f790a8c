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

// Package normalize prepares text for line comparison.
//
// Normalization never adds or removes line terminators, so line numbers computed on normalized
// text are valid for the original text.
package normalize

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"

	"znkr.io/merge/internal/config"
)

// Sentinel is the last line of every line sequence produced by [Lines]. It makes sure that a
// missing newline at the end of a text surfaces as a difference of its own.
const Sentinel = "EOF"

// Whitespace that is subject to the whitespace rules. Line terminators are never touched.
// Lines end at \r\n, \r or \n; multiline ^ and $ only know \n.
const space = `[ \t\f\v]`

var (
	wsBegin  = regexp2.MustCompile(`(?<=\A|[\r\n])`+space+`+`, regexp2.None)
	wsEnd    = regexp2.MustCompile(space+`+(?=[\r\n]|\z)`, regexp2.None)
	wsMiddle = regexp2.MustCompile(`(?<=[^ \t\f\v\r\n])`+space+`+(?=[^ \t\f\v\r\n])`, regexp2.None)
)

// Terminators converts all line terminators in text to the style le. With
// [config.LineEndingAsIs], text is returned unchanged.
func Terminators(text string, le config.LineEnding) string {
	term := le.Terminator()
	if term == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if term != "\n" {
		text = strings.ReplaceAll(text, "\n", term)
	}
	return text
}

// Compare prepares text for comparison by applying the CRLF, case and whitespace rules in cfg.
func Compare(text string, cfg config.Config) (string, error) {
	if cfg.IgnoreCRLF {
		text = Terminators(text, config.LineEndingUnix)
	}
	if cfg.IgnoreCase {
		text = cases.Fold().String(text)
	}
	return Whitespace(text, cfg.IgnoreWhitespace)
}

// Whitespace strips leading and trailing whitespace and collapses interior whitespace runs to a
// single space, depending on ws.
func Whitespace(text string, ws config.Whitespace) (string, error) {
	var err error
	for _, r := range []struct {
		ws   config.Whitespace
		re   *regexp2.Regexp
		repl string
	}{
		{config.WhitespaceBegin, wsBegin, ""},
		{config.WhitespaceEnd, wsEnd, ""},
		{config.WhitespaceMiddle, wsMiddle, " "},
	} {
		if ws&r.ws == 0 {
			continue
		}
		text, err = r.re.Replace(text, r.repl, -1, -1)
		if err != nil {
			return "", fmt.Errorf("normalizing whitespace: %v", err)
		}
	}
	return text, nil
}

// Lines prepares text for comparison and splits it into lines. The last line is always
// [Sentinel].
func Lines(text string, cfg config.Config) ([]string, error) {
	text, err := Compare(Terminators(text, cfg.LineEnding), cfg)
	if err != nil {
		return nil, err
	}
	return SplitLines(text + "\n" + Sentinel), nil
}

// SplitLines splits text after every line terminator (\r\n, \r or \n). The terminators are kept,
// so that concatenating the lines yields text again. If text is empty or ends with a terminator,
// the last line is empty.
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}
		lines = append(lines, text[start:i+1])
		start = i + 1
	}
	return append(lines, text[start:])
}

// HasTrailingTerminator reports whether line ends with a line terminator.
func HasTrailingTerminator(line string) bool {
	return strings.HasSuffix(line, "\n") || strings.HasSuffix(line, "\r")
}

// TrimTerminator removes a trailing line terminator from line.
func TrimTerminator(line string) string {
	if s, ok := strings.CutSuffix(line, "\r\n"); ok {
		return s
	}
	if s, ok := strings.CutSuffix(line, "\n"); ok {
		return s
	}
	s, _ := strings.CutSuffix(line, "\r")
	return s
}
