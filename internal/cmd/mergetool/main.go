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

// mergetool merges or compares files on disk.
//
//	mergetool [-settings file.yaml] [-o output] THEIR BASE MINE
//	mergetool [-settings file.yaml] LEFT RIGHT
//
// With three files, the edits from BASE to THEIR and from BASE to MINE are merged and the result is
// written to output (stdout by default). Conflicts are reported on stderr and the exit code is 1 if
// any remain. The tool can be used as a git merge driver:
//
//	[merge "mergetool"]
//		driver = mergetool -o %A %A %O %B
//
// Note that git passes the ancestor as %O, so THEIR is %A, BASE is %O and MINE is %B.
//
// With two files, the hunks between them are printed. Lines that are paired in a modification are
// followed by their changed characters.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"

	"znkr.io/merge"
	"znkr.io/merge/internal/normalize"
	"znkr.io/merge/settings"
)

var (
	settingsFlag = flag.String("settings", "", "YAML file with comparison settings.")
	outputFlag   = flag.String("o", "", "Write the merged text to this file instead of stdout.")
)

// Exit code if conflicts remain.
const exitConflicts = 1

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] THEIR BASE MINE | LEFT RIGHT\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	s, err := loadSettings(*settingsFlag)
	if err != nil {
		glog.Exitf("loading settings: %v", err)
	}

	var code int
	switch flag.NArg() {
	case 2:
		err = diff(os.Stdout, s, flag.Arg(0), flag.Arg(1))
	case 3:
		code, err = merge3(os.Stdout, os.Stderr, s, *outputFlag, flag.Arg(0), flag.Arg(1), flag.Arg(2))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		glog.Exitf("%v", err)
	}
	glog.Flush()
	os.Exit(code)
}

func loadSettings(path string) (settings.Settings, error) {
	if path == "" {
		return settings.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Parse(data)
}

func readFiles(names ...string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading input: %v", err)
		}
		out[i] = string(data)
	}
	return out, nil
}

func merge3(stdout, stderr io.Writer, s settings.Settings, output, their, base, mine string) (int, error) {
	texts, err := readFiles(their, base, mine)
	if err != nil {
		return 0, err
	}
	opts, err := s.Options()
	if err != nil {
		return 0, err
	}

	changes, merged, err := merge.Merge(texts[0], texts[1], texts[2], opts...)
	if err != nil {
		return 0, err
	}
	conflicts := 0
	for i, c := range changes {
		if !c.IsConflict {
			continue
		}
		conflicts++
		h := merged.Hunks[i]
		fmt.Fprintf(stderr, "conflict at line %d: %s %s, %s %s\n", h.Start, their, lines(c.Their), mine, lines(c.Mine))
	}
	glog.V(1).Infof("merged %s, %s, %s: %d changes, %d conflicts", their, base, mine, len(changes), conflicts)

	if output == "" {
		_, err = io.WriteString(stdout, merged.Text)
	} else {
		err = os.WriteFile(output, []byte(merged.Text), 0o666)
	}
	if err != nil {
		return 0, fmt.Errorf("writing output: %v", err)
	}
	if conflicts > 0 {
		return exitConflicts, nil
	}
	return 0, nil
}

func diff(w io.Writer, s settings.Settings, left, right string) error {
	texts, err := readFiles(left, right)
	if err != nil {
		return err
	}
	opts, err := s.Options()
	if err != nil {
		return err
	}
	iopts, err := s.IntralineOptions()
	if err != nil {
		return err
	}

	hunks, err := merge.Diff(texts[0], texts[1], opts...)
	if err != nil {
		return err
	}
	xlines, ylines := splitLines(texts[0]), splitLines(texts[1])
	for _, h := range hunks {
		fmt.Fprintf(w, "@@ %v -%d,%d +%d,%d @@\n", h.Kind, h.Left.Start, h.Left.Size(), h.Right.Start, h.Right.Size())
		paired := min(h.Left.Size(), h.Right.Size())
		for i := range paired {
			x, y := line(xlines, h.Left.Start+i), line(ylines, h.Right.Start+i)
			xs, ys, err := merge.Intraline(x, y, iopts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "-%s%v\n", x, spans(xs))
			fmt.Fprintf(w, "+%s%v\n", y, spans(ys))
		}
		for i := paired; i < h.Left.Size(); i++ {
			fmt.Fprintf(w, "-%s\n", line(xlines, h.Left.Start+i))
		}
		for i := paired; i < h.Right.Size(); i++ {
			fmt.Fprintf(w, "+%s\n", line(ylines, h.Right.Start+i))
		}
	}
	return nil
}

func lines(s merge.Side) string {
	if s.End == 0 {
		return fmt.Sprintf("before line %d", s.Start)
	}
	return fmt.Sprintf("lines %d-%d", s.Start, s.End)
}

// line returns the 1-based line n or "" if there is no such line.
func line(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func splitLines(s string) []string {
	lines := normalize.SplitLines(s)
	for i, l := range lines {
		lines[i] = normalize.TrimTerminator(l)
	}
	return lines
}

type spans []merge.Span

func (s spans) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\t#")
	for _, sp := range s {
		fmt.Fprintf(&b, " %v[%d:%d]", sp.Kind, sp.Start, sp.End)
		if sp.Unimportant {
			b.WriteString("?")
		}
	}
	return b.String()
}
