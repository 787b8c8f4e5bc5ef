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

package graph

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind

// Kind distinguishes ordinary pairs from the two halves of a transposition.
type Kind int

const (
	// Ordinary pairs carry their own data.
	Ordinary Kind = iota
	// Parent pairs carry data that is also read by one or more children.
	Parent
	// Child pairs carry no data, they read the data of the parent with the same id.
	Child
)
