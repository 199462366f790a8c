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

// Package rvecs contains functions to work with result vectors, the internal representation that
// sits between a matcher and the user facing hunks. A result vector has one entry per line plus a
// trailing sentinel; an entry is true if the line is not matched by the other side.
package rvecs

import (
	"errors"
	"fmt"

	"znkr.io/merge/internal/match"
)

// ErrPairs is returned if a matcher reports pairs that are out of order or out of range.
var ErrPairs = errors.New("invalid match pairs")

// Make returns result vectors for sequences of length n and m with every line marked as unmatched.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	for i := range n {
		rx[i] = true
	}
	for i := range m {
		ry[i] = true
	}
	return
}

// FromPairs converts matched pairs into result vectors. The pairs must be strictly increasing on
// both sides.
func FromPairs(n, m int, pairs []match.Pair) (rx, ry []bool, err error) {
	rx, ry = Make(n, m)
	last := match.Pair{A: -1, B: -1}
	for _, p := range pairs {
		if p.A <= last.A || p.B <= last.B {
			return nil, nil, fmt.Errorf("%w: %v follows %v", ErrPairs, p, last)
		}
		if p.A >= n || p.B >= m {
			return nil, nil, fmt.Errorf("%w: %v out of range [%d, %d]", ErrPairs, p, n, m)
		}
		rx[p.A], ry[p.B] = false, false
		last = p
	}
	return rx, ry, nil
}
