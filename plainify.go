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

// Package plainify converts DOCX documents into a structured, hierarchical
// YAML representation: headings with levels, paragraphs, nested lists,
// tables as ordered row mappings, and image nodes optionally enriched with
// model-generated descriptions.
package plainify

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nicholasgasior/plainify-go/internal/ooxml"
)

// MIMEDocx is the content type of a DOCX document.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Converter is the conversion engine. It is stateless between runs; a
// single instance may be reused for any number of documents.
type Converter struct {
	describer Describer
	logger    *slog.Logger
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile converts a DOCX file into the output node sequence.
func (c *Converter) ConvertFile(ctx context.Context, path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	ext := strings.ToLower(filepath.Ext(path))
	return c.convert(ctx, data, ext, path)
}

// ConvertReader converts a DOCX stream into the output node sequence. The
// format is sniffed from content.
func (c *Converter) ConvertReader(ctx context.Context, r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputError{Err: err}
	}
	return c.convert(ctx, data, "", "")
}

// ConvertToFile converts inputPath and writes the YAML document to
// outputPath. A write failure discards the result and leaves no partial
// file behind.
func (c *Converter) ConvertToFile(ctx context.Context, inputPath, outputPath string) error {
	c.logger.Info("starting conversion", "input", inputPath)

	nodes, err := c.ConvertFile(ctx, inputPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output %s: %w", outputPath, err)
	}
	if err := WriteYAML(f, nodes); err != nil {
		f.Close()
		os.Remove(outputPath)
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.logger.Info("conversion completed", "output", outputPath, "nodes", len(nodes))
	return nil
}

func (c *Converter) convert(ctx context.Context, data []byte, ext, path string) ([]Node, error) {
	mime := mimetype.Detect(data)
	if ext != ".docx" && !mime.Is(MIMEDocx) {
		return nil, &UnsupportedFormatError{Extension: ext, MIMEType: mime.String()}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &InputError{Path: path, Err: fmt.Errorf("open DOCX ZIP: %w", err)}
	}

	docData, err := ooxml.ReadFileFromZip(zr, "word/document.xml")
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	rels, _ := ooxml.ParseRelationships(zr, "word/_rels/document.xml.rels")
	styles := ooxml.ParseStyles(zr)
	numbering := ooxml.ParseNumbering(zr)

	raw := parseDocument(docData, rels)
	blocks := classifyBlocks(raw, styles, numbering)

	// Image bytes are only pulled out of the archive when a describer
	// will consume them.
	if c.describer != nil {
		for i := range blocks {
			if blocks[i].kind != blockImage {
				continue
			}
			imgData, err := ooxml.ReadFileFromZip(zr, blocks[i].target)
			if err != nil {
				c.logger.Warn("image data missing from archive",
					"block", i, "name", blocks[i].name, "err", err)
				continue
			}
			blocks[i].data = imgData
		}
	}

	nodes := buildTree(blocks)
	c.logger.Debug("document converted", "blocks", len(blocks), "nodes", len(nodes))

	if c.describer != nil {
		c.describeImages(ctx, nodes)
	}
	return nodes, nil
}

// describeImages runs the enrichment call for every image node, in
// document order, one at a time. A failed call is logged at warning
// level and leaves the node without a description; it never aborts the
// conversion or disturbs sibling nodes.
func (c *Converter) describeImages(ctx context.Context, nodes []Node) {
	for i, n := range nodes {
		img, ok := n.(*Image)
		if !ok {
			continue
		}
		desc, err := c.describeOne(ctx, img)
		if err != nil {
			c.logger.Warn("image description failed", "block", i, "name", img.Name, "err", err)
		} else {
			img.Description = desc
		}
		img.data = nil
	}
}

func (c *Converter) describeOne(ctx context.Context, img *Image) (string, error) {
	if len(img.data) == 0 {
		return "", &DescriptionError{
			Name:   img.Name,
			Reason: DescribeUnsupported,
			Err:    errors.New("no image data"),
		}
	}
	if err := validateImage(img.data, img.Name); err != nil {
		return "", err
	}
	return c.describer.Describe(ctx, img.data, img.Name)
}
