package plainify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nicholasgasior/plainify-go/internal/ooxml"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
	blockTable
	blockImage
)

type markerStyle int

const (
	markerBullet markerStyle = iota
	markerNumbered
)

// block is a classified document unit: the flat, tagged sequence the tree
// builder consumes.
type block struct {
	kind blockKind
	text string

	headingLevel int         // headings only, 1-6
	listLevel    int         // list items only, 0-based
	marker       markerStyle // list items only, informational

	cells [][]string // tables only

	name   string // images only
	target string // images only, zip path of the media part
	data   []byte // images only, loaded when a describer is configured
}

// maxHeadingLevel is the deepest supported heading level; deeper styles
// are clamped.
const maxHeadingLevel = 6

// maxListLevel caps list nesting depth, matching the nine levels a DOCX
// numbering definition can carry.
const maxListLevel = 8

var (
	reBulletMarker = regexp.MustCompile(`^[\x{2022}\x{25E6}\x{25AA}\x{25AB}\x{2023}\x{2043}\-*+]\s*`)
	reNumberMarker = regexp.MustCompile(`^\d+[.)]\s*`)
	reLetterMarker = regexp.MustCompile(`^[a-zA-Z][.)]\s*`)
	reRomanMarker  = regexp.MustCompile(`(?i)^[ivxlcdm]+[.)]\s*`)
)

// classifyBlocks tags every raw block as paragraph, heading, list item,
// table or image. Pure; order is preserved. Unrecognized paragraph styles
// fall through to the paragraph kind — degradation is the normal branch
// here, not error recovery.
func classifyBlocks(raw []rawBlock, styles map[string]ooxml.Style, numbering *ooxml.Numbering) []block {
	blocks := make([]block, 0, len(raw))
	for _, rb := range raw {
		switch rb.kind {
		case rawTable:
			blocks = append(blocks, block{kind: blockTable, cells: rb.cells})
		case rawImage:
			blocks = append(blocks, block{kind: blockImage, name: rb.name, target: rb.target})
		default:
			blocks = append(blocks, classifyParagraph(rb, styles, numbering))
		}
	}
	return blocks
}

// classifyParagraph tags one paragraph-like block.
func classifyParagraph(rb rawBlock, styles map[string]ooxml.Style, numbering *ooxml.Numbering) block {
	text := normalizeText(rb.text)

	if level := headingLevel(rb.styleID, styles); level > 0 {
		return block{kind: blockHeading, text: text, headingLevel: level}
	}

	// Numbering metadata is authoritative for lists. numId 0 detaches a
	// paragraph from its list.
	if rb.hasNum && rb.numID != "" && rb.numID != "0" {
		level := rb.ilvl
		if level < 0 {
			level = 0
		}
		if level > maxListLevel {
			level = maxListLevel
		}
		marker := markerNumbered
		if numbering.Format(rb.numID, rb.ilvl) == "bullet" {
			marker = markerBullet
		}
		return block{
			kind:      blockListItem,
			text:      stripListMarker(text),
			listLevel: level,
			marker:    marker,
		}
	}

	// Fall back to textual markers for lists typed without Word's list
	// formatting. Level is estimated from leading indentation.
	if kind, ok := textualMarker(text); ok {
		return block{
			kind:      blockListItem,
			text:      stripListMarker(text),
			listLevel: indentLevel(rb.text),
			marker:    kind,
		}
	}

	return block{kind: blockParagraph, text: text}
}

// headingLevel maps a paragraph style to a heading level, or 0 when the
// style is not a heading. Style IDs are checked directly ("Heading1",
// "heading 2") and through the styles.xml display name; "Title" and
// "Subtitle" map to levels 1 and 2. Levels parse from the trailing
// number, default to 1 when missing, and clamp to the supported range.
func headingLevel(styleID string, styles map[string]ooxml.Style) int {
	if styleID == "" {
		return 0
	}

	if level := headingLevelFromName(styleID); level > 0 {
		return level
	}
	if si, ok := styles[styleID]; ok {
		return headingLevelFromName(si.Name)
	}
	return 0
}

func headingLevelFromName(name string) int {
	lower := strings.ToLower(strings.TrimSpace(name))

	switch lower {
	case "title":
		return 1
	case "subtitle":
		return 2
	}

	if !strings.HasPrefix(lower, "heading") {
		return 0
	}
	rest := strings.TrimSpace(strings.TrimPrefix(lower, "heading"))
	if rest == "" {
		return 1
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 {
		return 1
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}

// textualMarker reports whether the text starts with a recognized list
// marker and which marker family it belongs to.
func textualMarker(text string) (markerStyle, bool) {
	for _, r := range []rune{'•', '◦', '▪', '▫', '‣', '⁃', '-', '*', '+'} {
		if strings.HasPrefix(text, string(r)) {
			return markerBullet, true
		}
	}
	if reNumberMarker.MatchString(text) || reLetterMarker.MatchString(text) || reRomanMarker.MatchString(text) {
		return markerNumbered, true
	}
	return markerBullet, false
}

// stripListMarker removes a leading bullet, number, letter or roman
// numeral marker. Markers are informational only and never emitted.
func stripListMarker(text string) string {
	text = reBulletMarker.ReplaceAllString(text, "")
	text = reNumberMarker.ReplaceAllString(text, "")
	text = reLetterMarker.ReplaceAllString(text, "")
	text = reRomanMarker.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// indentLevel estimates a 0-based nesting level from leading whitespace:
// one level per tab or per four spaces.
func indentLevel(text string) int {
	spaces := 0
	level := 0
	for _, r := range text {
		switch r {
		case '\t':
			level++
		case ' ':
			spaces++
		default:
			return level + spaces/4
		}
	}
	return level + spaces/4
}
