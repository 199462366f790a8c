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

// Package match finds corresponding lines in two line sequences.
package match

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"znkr.io/merge/internal/config"
)

// Pair is a correspondence between line A in the first and line B in the second sequence.
type Pair struct {
	A, B int
}

// Matcher finds equal lines in a and b. The result is strictly increasing in both A and B.
type Matcher interface {
	Match(a, b []string) []Pair
}

// New returns the matcher for cfg.
func New(cfg config.Config) Matcher {
	switch cfg.Algorithm {
	case config.General:
		return General{}
	case config.Patience:
		return Patience{MaxDepth: cfg.MaxRecursion}
	default:
		panic(fmt.Sprintf("unknown algorithm: %v", cfg.Algorithm))
	}
}

// General matches lines using difflib's SequenceMatcher. Lines that make up more than 1% of a
// sequence with at least 200 lines are treated as junk and only match when adjacent to other
// matches.
type General struct{}

func (General) Match(a, b []string) []Pair {
	blocks := difflib.NewMatcher(a, b).GetMatchingBlocks()
	n := 0
	for _, blk := range blocks {
		n += blk.Size
	}
	pairs := make([]Pair, 0, n)
	for _, blk := range blocks {
		for k := range blk.Size {
			pairs = append(pairs, Pair{blk.A + k, blk.B + k})
		}
	}
	return pairs
}
