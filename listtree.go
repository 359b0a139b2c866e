// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package plainify

// pendingItem is an open list context while a run of list-item blocks is
// being folded into a tree. Each item is owned by its parent's children
// slice (or the run's roots) until the run is flushed. claimed is the
// level the source block declared; the emitted depth is structural, one
// past the parent, which is what clamps malformed level jumps.
type pendingItem struct {
	text     string
	claimed  int
	children []*pendingItem
}

// buildTree folds the flat classified sequence into the final node
// sequence in a single forward pass.
//
// Consecutive list-item blocks accumulate into one List node: a stack of
// open contexts tracks the current nesting path, and an item at level L
// first closes every context at level >= L. After closing, the item
// always attaches one level below the remaining top, which both nests
// well-formed input and clamps malformed level jumps (a level-2 item with
// no open level-1 ancestor lands at the nearest valid depth). Any
// non-list block flushes the accumulated list into the output before its
// own node is appended, so top-level order is preserved.
func buildTree(blocks []block) []Node {
	var nodes []Node

	var roots []*pendingItem
	var stack []*pendingItem

	flush := func() {
		if len(roots) == 0 {
			return
		}
		nodes = append(nodes, &List{Items: collapseItems(roots)})
		roots = nil
		stack = nil
	}

	for i := range blocks {
		b := &blocks[i]

		if b.kind != blockListItem {
			flush()
			switch b.kind {
			case blockParagraph:
				nodes = append(nodes, &Paragraph{Text: b.text})
			case blockHeading:
				nodes = append(nodes, &Heading{Text: b.text, Level: b.headingLevel})
			case blockTable:
				if t, ok := extractTable(b.cells); ok {
					nodes = append(nodes, t)
				}
			case blockImage:
				nodes = append(nodes, &Image{Name: b.name, data: b.data})
			}
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].claimed >= b.listLevel {
			stack = stack[:len(stack)-1]
		}

		item := &pendingItem{text: b.text, claimed: b.listLevel}
		if len(stack) == 0 {
			roots = append(roots, item)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, item)
		}
		stack = append(stack, item)
	}

	flush()
	return nodes
}

// FlattenItems returns the item texts of a list tree in document order
// (pre-order walk). Folding a block run into a tree and flattening it
// back reproduces the original item order.
func FlattenItems(items []ListItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Text)
		out = append(out, FlattenItems(it.Children)...)
	}
	return out
}

// collapseItems converts the mutable pending tree into the output shape.
func collapseItems(items []*pendingItem) []ListItem {
	out := make([]ListItem, len(items))
	for i, it := range items {
		out[i] = ListItem{Text: it.text}
		if len(it.children) > 0 {
			out[i].Children = collapseItems(it.children)
		}
	}
	return out
}
