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

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML emits the node sequence as a YAML document: deterministic,
// order-preserving, 2-space indent, keys in schema order. The only
// failure mode is writer I/O, propagated unretried.
func WriteYAML(w io.Writer, nodes []Node) error {
	if nodes == nil {
		nodes = []Node{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nodes); err != nil {
		return err
	}
	return enc.Close()
}

// EncodeYAML renders the node sequence to a byte slice.
func EncodeYAML(nodes []Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, nodes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a document produced by WriteYAML back into a node
// sequence. It is the reverse mapping the serializer's round-trip
// property is tested against.
func DecodeYAML(r io.Reader) ([]Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("decode: expected a top-level sequence, got %v", root.Kind)
	}

	var nodes []Node
	for i, item := range root.Content {
		n, err := decodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("decode node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(m *yaml.Node) (Node, error) {
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping, got %v", m.Kind)
	}

	typ := mapValue(m, "type")
	if typ == nil {
		return nil, fmt.Errorf("missing type field")
	}

	switch typ.Value {
	case "paragraph":
		return &Paragraph{Text: scalar(mapValue(m, "text"))}, nil

	case "heading":
		h := &Heading{Text: scalar(mapValue(m, "text"))}
		if lv := mapValue(m, "level"); lv != nil {
			if err := lv.Decode(&h.Level); err != nil {
				return nil, fmt.Errorf("heading level: %w", err)
			}
		}
		return h, nil

	case "list":
		items, err := decodeListItems(mapValue(m, "items"))
		if err != nil {
			return nil, err
		}
		return &List{Items: items}, nil

	case "table":
		t := &Table{}
		rowsNode := mapValue(m, "rows")
		if rowsNode != nil && rowsNode.Kind == yaml.SequenceNode {
			for _, rn := range rowsNode.Content {
				row, err := decodeRow(rn)
				if err != nil {
					return nil, err
				}
				t.Rows = append(t.Rows, row)
			}
		}
		return t, nil

	case "image":
		return &Image{
			Name:        scalar(mapValue(m, "name")),
			Description: scalar(mapValue(m, "description")),
		}, nil

	default:
		return nil, fmt.Errorf("unknown node type %q", typ.Value)
	}
}

func decodeListItems(seq *yaml.Node) ([]ListItem, error) {
	if seq == nil {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("list items: expected a sequence, got %v", seq.Kind)
	}
	var items []ListItem
	for _, n := range seq.Content {
		if n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("list item: expected a mapping, got %v", n.Kind)
		}
		item := ListItem{Text: scalar(mapValue(n, "text"))}
		children, err := decodeListItems(mapValue(n, "children"))
		if err != nil {
			return nil, err
		}
		item.Children = children
		items = append(items, item)
	}
	return items, nil
}

func decodeRow(m *yaml.Node) (Row, error) {
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("table row: expected a mapping, got %v", m.Kind)
	}
	row := make(Row, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		row = append(row, Cell{
			Header: m.Content[i].Value,
			Value:  m.Content[i+1].Value,
		})
	}
	return row, nil
}

// mapValue returns the value node for a key in a mapping, or nil.
func mapValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalar(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	return n.Value
}
