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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"znkr.io/merge/settings"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestMerge3(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"their": "A\nX\nC\n",
		"base":  "A\nB\nC\n",
		"mine":  "A\nB\nC\nD\n",
	})
	out := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer
	code, err := merge3(&stdout, &stderr, settings.Default(), out,
		filepath.Join(dir, "their"), filepath.Join(dir, "base"), filepath.Join(dir, "mine"))
	if err != nil {
		t.Fatalf("merge3(...) failed: %v", err)
	}
	if code != 0 {
		t.Errorf("merge3(...) = %d, want 0; stderr:\n%s", code, stderr.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("A\nX\nC\nD\n", string(got)); diff != "" {
		t.Errorf("merged output is different [-want,+got]:\n%s", diff)
	}
}

func TestMerge3Conflict(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"their": "A\nX\nC\n",
		"base":  "A\nB\nC\n",
		"mine":  "A\nY\nC\n",
	})
	var stdout, stderr bytes.Buffer
	code, err := merge3(&stdout, &stderr, settings.Default(), "",
		filepath.Join(dir, "their"), filepath.Join(dir, "base"), filepath.Join(dir, "mine"))
	if err != nil {
		t.Fatalf("merge3(...) failed: %v", err)
	}
	if code != exitConflicts {
		t.Errorf("merge3(...) = %d, want %d", code, exitConflicts)
	}
	if diff := cmp.Diff("A\nC\n", stdout.String()); diff != "" {
		t.Errorf("merged output is different [-want,+got]:\n%s", diff)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("conflict at line 2")) {
		t.Errorf("stderr = %q, want conflict report", stderr.String())
	}
}

func TestMerge3MissingFile(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	_, err := merge3(&stdout, &stderr, settings.Default(), "",
		filepath.Join(dir, "their"), filepath.Join(dir, "base"), filepath.Join(dir, "mine"))
	if err == nil {
		t.Errorf("merge3(...) with missing files succeeded")
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		want        string
	}{
		{
			name:  "lf",
			left:  "one\ncall(foo, bar)\nthree\n",
			right: "one\ncall(foo, baz)\nthree\nfour\n",
			want: "@@ Modify -2,1 +2,1 @@\n" +
				"-call(foo, bar)\t# Modify[12:13]\n" +
				"+call(foo, baz)\t# Modify[12:13]\n" +
				"@@ Insert -4,0 +4,1 @@\n" +
				"+four\n",
		},
		{
			name:  "cr",
			left:  "one\rcall(foo, bar)\rthree\r",
			right: "one\rcall(foo, baz)\rthree\r",
			want: "@@ Modify -2,1 +2,1 @@\n" +
				"-call(foo, bar)\t# Modify[12:13]\n" +
				"+call(foo, baz)\t# Modify[12:13]\n",
		},
		{
			name:  "unpaired",
			left:  "one\ntwo\nfive\n",
			right: "one\nthree\nfour\nfive\n",
			want: "@@ Modify -2,1 +2,2 @@\n" +
				"-two\n" +
				"+three\n" +
				"+four\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				"left":  tt.left,
				"right": tt.right,
			})
			var stdout bytes.Buffer
			if err := diff(&stdout, settings.Default(), filepath.Join(dir, "left"), filepath.Join(dir, "right")); err != nil {
				t.Fatalf("diff(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout.String()); diff != "" {
				t.Errorf("diff output is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"settings.yaml": "algorithm: general\nignore_case: true\n",
		"bad.yaml":      "algorithm: unknown\n",
	})
	s, err := loadSettings(filepath.Join(dir, "settings.yaml"))
	if err != nil {
		t.Fatalf("loadSettings(...) failed: %v", err)
	}
	if s.Algorithm != "general" || !s.IgnoreCase {
		t.Errorf("loadSettings(...) = %+v, want general algorithm and ignore_case", s)
	}
	if _, err := loadSettings(filepath.Join(dir, "bad.yaml")); err == nil {
		t.Errorf("loadSettings(bad.yaml) succeeded")
	}
	if s, err := loadSettings(""); err != nil || !cmp.Equal(s, settings.Default()) {
		t.Errorf("loadSettings(\"\") = %+v, %v, want defaults", s, err)
	}
}
