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

package suffixtree

// maxList is the number of children kept in a list before switching to a map.
const maxList = 6

type edge struct {
	r rune
	n int32
}

// children maps the first rune of an edge label to the node it leads to. Most nodes have only a
// few children and use a short list.
type children struct {
	list []edge
	m    map[rune]int32
}

func (c *children) get(r rune) (int32, bool) {
	if c.m != nil {
		n, ok := c.m[r]
		return n, ok
	}
	for _, e := range c.list {
		if e.r == r {
			return e.n, true
		}
	}
	return 0, false
}

func (c *children) put(r rune, n int32) {
	if c.m != nil {
		c.m[r] = n
		return
	}
	for i := range c.list {
		if c.list[i].r == r {
			c.list[i].n = n
			return
		}
	}
	if len(c.list) < maxList {
		c.list = append(c.list, edge{r, n})
		return
	}
	c.m = make(map[rune]int32, len(c.list)+1)
	for _, e := range c.list {
		c.m[e.r] = e.n
	}
	c.m[r] = n
	c.list = nil
}
