// Package ooxml provides readers for the OOXML container parts a DOCX
// conversion needs: relationships, style definitions and list numbering.
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Common OOXML namespaces.
const (
	NSRelationships    = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSDrawingML        = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSRelDoc           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Relationship represents an OOXML relationship.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Relationships is the root element for .rels files.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// ParseRelationships parses a .rels file from the ZIP. A missing part
// yields an empty map, not an error.
func ParseRelationships(zr *zip.Reader, relsPath string) (map[string]Relationship, error) {
	for _, f := range zr.File {
		if f.Name == relsPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return decodeRels(rc)
		}
	}
	return make(map[string]Relationship), nil
}

func decodeRels(r io.Reader) (map[string]Relationship, error) {
	var rels Relationships
	if err := xml.NewDecoder(r).Decode(&rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	result := make(map[string]Relationship, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		result[rel.ID] = rel
	}
	return result, nil
}

// ReadFileFromZip reads a file from a zip archive.
func ReadFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file %q not found in ZIP", name)
}

// ResolveTarget resolves a relative relationship target against a base path.
func ResolveTarget(basePath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := path.Dir(basePath)
	return path.Join(dir, target)
}

// Style holds the display name for a style ID from word/styles.xml.
type Style struct {
	StyleID string
	Name    string
}

// ParseStyles parses word/styles.xml into a styleID -> Style map. A
// missing or malformed part yields an empty map.
func ParseStyles(zr *zip.Reader) map[string]Style {
	styles := make(map[string]Style)
	data, err := ReadFileFromZip(zr, "word/styles.xml")
	if err != nil {
		return styles
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var currentStyleID string
	var inStyle bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if local == "style" {
				inStyle = true
				for _, attr := range t.Attr {
					if attr.Name.Local == "styleId" {
						currentStyleID = attr.Value
					}
				}
			} else if inStyle && local == "name" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						styles[currentStyleID] = Style{
							StyleID: currentStyleID,
							Name:    attr.Value,
						}
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "style" {
				inStyle = false
				currentStyleID = ""
			}
		}
	}
	return styles
}

// Numbering resolves a (numID, ilvl) numbering reference to its number
// format ("bullet", "decimal", "lowerLetter", ...).
type Numbering struct {
	// numID -> abstractNumID
	nums map[string]string
	// abstractNumID -> ilvl -> numFmt
	abstract map[string]map[int]string
}

// Format returns the numFmt for a numbering reference, or "" if unknown.
func (n *Numbering) Format(numID string, ilvl int) string {
	if n == nil {
		return ""
	}
	abstractID, ok := n.nums[numID]
	if !ok {
		return ""
	}
	levels, ok := n.abstract[abstractID]
	if !ok {
		return ""
	}
	return levels[ilvl]
}

// ParseNumbering parses word/numbering.xml. A missing part yields an empty
// Numbering for which Format always returns "".
func ParseNumbering(zr *zip.Reader) *Numbering {
	numbering := &Numbering{
		nums:     make(map[string]string),
		abstract: make(map[string]map[int]string),
	}
	data, err := ReadFileFromZip(zr, "word/numbering.xml")
	if err != nil {
		return numbering
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var currentNumID string
	var currentAbstractID string
	var currentLevel int
	var inNum, inAbstract, inLevel bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "num":
				inNum = true
				for _, attr := range t.Attr {
					if attr.Name.Local == "numId" {
						currentNumID = attr.Value
					}
				}
			case "abstractNumId":
				if inNum {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							numbering.nums[currentNumID] = attr.Value
						}
					}
				}
			case "abstractNum":
				inAbstract = true
				for _, attr := range t.Attr {
					if attr.Name.Local == "abstractNumId" {
						currentAbstractID = attr.Value
						numbering.abstract[currentAbstractID] = make(map[int]string)
					}
				}
			case "lvl":
				if inAbstract {
					inLevel = true
					currentLevel = 0
					for _, attr := range t.Attr {
						if attr.Name.Local == "ilvl" {
							fmt.Sscanf(attr.Value, "%d", &currentLevel)
						}
					}
				}
			case "numFmt":
				if inLevel {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							numbering.abstract[currentAbstractID][currentLevel] = attr.Value
						}
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "num":
				inNum = false
				currentNumID = ""
			case "abstractNum":
				inAbstract = false
				currentAbstractID = ""
			case "lvl":
				inLevel = false
			}
		}
	}
	return numbering
}
