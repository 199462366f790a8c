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

// Kind describes how a hunk, a side of a hunk, or a line changed.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Modify   Kind = iota // Lines that changed on both sides
	Insert               // Lines that only exist on this side
	Delete               // Lines that only exist on the other side
	Conflict             // Lines that were changed concurrently in a merge
	Missing              // Placeholder lines standing in for lines of the other side
)
