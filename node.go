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
	"gopkg.in/yaml.v3"
)

// Node is one top-level unit of the output tree: a paragraph, heading,
// list, table or image, in document order.
type Node interface {
	// Type returns the schema type tag ("paragraph", "heading", ...).
	Type() string
}

// Paragraph is a plain block of text.
type Paragraph struct {
	Text string
}

func (p *Paragraph) Type() string { return "paragraph" }

func (p *Paragraph) MarshalYAML() (interface{}, error) {
	return struct {
		Type string `yaml:"type"`
		Text string `yaml:"text"`
	}{p.Type(), p.Text}, nil
}

// Heading is a titled section marker with a level of 1-6.
type Heading struct {
	Text  string
	Level int
}

func (h *Heading) Type() string { return "heading" }

func (h *Heading) MarshalYAML() (interface{}, error) {
	return struct {
		Type  string `yaml:"type"`
		Text  string `yaml:"text"`
		Level int    `yaml:"level"`
	}{h.Type(), h.Text, h.Level}, nil
}

// ListItem is a single entry in a List. Children hold nested entries one
// level deeper; the tree is acyclic and each item is owned by exactly one
// parent.
type ListItem struct {
	Text     string     `yaml:"text"`
	Children []ListItem `yaml:"children,omitempty"`
}

// List aggregates a maximal run of consecutive list-item blocks into a
// nested item tree. A lone item still produces a List with one ListItem.
type List struct {
	Items []ListItem
}

func (l *List) Type() string { return "list" }

func (l *List) MarshalYAML() (interface{}, error) {
	return struct {
		Type  string     `yaml:"type"`
		Items []ListItem `yaml:"items"`
	}{l.Type(), l.Items}, nil
}

// Cell is one column of a table row, keyed by the (possibly disambiguated)
// header of its column.
type Cell struct {
	Header string
	Value  string
}

// Row is an ordered header->cell mapping. Order is column order; it
// marshals as a YAML mapping with keys in that order.
type Row []Cell

func (r Row) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range r {
		var k, v yaml.Node
		k.SetString(c.Header)
		v.SetString(c.Value)
		m.Content = append(m.Content, &k, &v)
	}
	return m, nil
}

// Get returns the cell value for a header, and whether the column exists.
func (r Row) Get(header string) (string, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return "", false
}

// Table holds the data rows of a source table, one Row per non-header
// source row.
type Table struct {
	Rows []Row
}

func (t *Table) Type() string { return "table" }

func (t *Table) MarshalYAML() (interface{}, error) {
	return struct {
		Type string `yaml:"type"`
		Rows []Row  `yaml:"rows"`
	}{t.Type(), t.Rows}, nil
}

// Image is an embedded picture. Description is present only when an
// enrichment call succeeded; when empty the field is omitted from output.
type Image struct {
	Name        string
	Description string

	// data holds the raw bytes for the describer call. Never serialized.
	data []byte
}

func (i *Image) Type() string { return "image" }

func (i *Image) MarshalYAML() (interface{}, error) {
	return struct {
		Type        string `yaml:"type"`
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
	}{i.Type(), i.Name, i.Description}, nil
}
