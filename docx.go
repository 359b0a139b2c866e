package plainify

import (
	"bytes"
	"encoding/xml"
	"path"
	"strconv"
	"strings"

	"github.com/nicholasgasior/plainify-go/internal/ooxml"
)

type rawKind int

const (
	rawParagraph rawKind = iota
	rawTable
	rawImage
)

// rawBlock is one structural unit from word/document.xml, in document
// order, before classification.
type rawBlock struct {
	kind rawKind

	// paragraph fields
	text    string
	styleID string
	numID   string
	ilvl    int
	hasNum  bool

	// table grid; cell paragraphs joined with newlines
	cells [][]string

	// image fields
	name   string // media file name, e.g. "image1.png"
	target string // zip path of the media part, e.g. "word/media/image1.png"
}

// parseDocument walks word/document.xml with a streaming decoder and emits
// the flat block sequence: paragraphs with style/numbering metadata, table
// grids, and inline images resolved through the relationships map.
//
// A paragraph that carries both text and drawings yields the paragraph
// block followed by one image block per drawing, preserving order. Empty
// paragraphs are dropped. Malformed XML terminates the walk; whatever was
// parsed up to that point is returned.
func parseDocument(docData []byte, rels map[string]ooxml.Relationship) []rawBlock {
	var blocks []rawBlock

	decoder := xml.NewDecoder(bytes.NewReader(docData))

	var (
		inParagraph bool
		inText      bool
		paraText    strings.Builder
		styleID     string
		numID       string
		ilvl        int
		hasNum      bool
		paraImages  []rawBlock

		tblDepth   int
		tableRows  [][]string
		currentRow []string
		cellParas  []string
		cellBuf    strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				if tblDepth > 0 {
					cellBuf.Reset()
				} else {
					paraText.Reset()
					styleID = ""
					numID = ""
					ilvl = 0
					hasNum = false
					paraImages = nil
				}

			case "pStyle":
				if inParagraph && tblDepth == 0 {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							styleID = attr.Value
						}
					}
				}

			case "numPr":
				if inParagraph && tblDepth == 0 {
					hasNum = true
				}

			case "numId":
				if hasNum {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							numID = attr.Value
						}
					}
				}

			case "ilvl":
				if hasNum {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							ilvl = parseInt(attr.Value, 0)
						}
					}
				}

			case "t":
				inText = true

			case "tab":
				if inParagraph {
					if tblDepth > 0 {
						cellBuf.WriteString("\t")
					} else {
						paraText.WriteString("\t")
					}
				}

			case "br":
				if inParagraph {
					if tblDepth > 0 {
						cellBuf.WriteString("\n")
					} else {
						paraText.WriteString("\n")
					}
				}

			case "drawing", "pict":
				embedID := consumeImage(decoder)
				// Images inside table cells are not represented in the
				// output schema.
				if embedID != "" && tblDepth == 0 {
					if rel, ok := rels[embedID]; ok {
						paraImages = append(paraImages, rawBlock{
							kind:   rawImage,
							name:   path.Base(rel.Target),
							target: ooxml.ResolveTarget("word/document.xml", rel.Target),
						})
					}
				}

			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					tableRows = nil
				}

			case "tr":
				if tblDepth == 1 {
					currentRow = nil
				}

			case "tc":
				if tblDepth == 1 {
					cellParas = nil
				}
			}

		case xml.CharData:
			if inText {
				if tblDepth > 0 {
					cellBuf.Write(t)
				} else {
					paraText.Write(t)
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false

			case "p":
				if !inParagraph {
					break
				}
				inParagraph = false
				if tblDepth > 0 {
					cellParas = append(cellParas, cellBuf.String())
					cellBuf.Reset()
					break
				}
				if strings.TrimSpace(paraText.String()) != "" {
					blocks = append(blocks, rawBlock{
						kind:    rawParagraph,
						text:    paraText.String(),
						styleID: styleID,
						numID:   numID,
						ilvl:    ilvl,
						hasNum:  hasNum,
					})
				}
				blocks = append(blocks, paraImages...)
				paraImages = nil

			case "tc":
				if tblDepth == 1 {
					var parts []string
					for _, p := range cellParas {
						if strings.TrimSpace(p) != "" {
							parts = append(parts, p)
						}
					}
					currentRow = append(currentRow, strings.Join(parts, "\n"))
				}

			case "tr":
				if tblDepth == 1 {
					tableRows = append(tableRows, currentRow)
				}

			case "tbl":
				tblDepth--
				if tblDepth == 0 && len(tableRows) > 0 {
					blocks = append(blocks, rawBlock{
						kind:  rawTable,
						cells: tableRows,
					})
				}
			}
		}
	}

	return blocks
}

// consumeImage reads to the end of a drawing/pict element and returns the
// embedded image relationship ID, if any. Both DrawingML (a:blip r:embed)
// and legacy VML (v:imagedata r:id) references are recognized.
func consumeImage(decoder *xml.Decoder) string {
	depth := 1
	var embedID string

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						embedID = attr.Value
					}
				}
			case "imagedata":
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" && embedID == "" {
						embedID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return embedID
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
