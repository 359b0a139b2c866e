package plainify

import (
	"testing"

	"github.com/nicholasgasior/plainify-go/internal/ooxml"
)

func TestHeadingLevel(t *testing.T) {
	styles := map[string]ooxml.Style{
		"Rubrik1": {StyleID: "Rubrik1", Name: "heading 1"},
		"Fancy":   {StyleID: "Fancy", Name: "Emphatic"},
	}

	tests := []struct {
		styleID string
		want    int
	}{
		{"Heading1", 1},
		{"Heading3", 3},
		{"heading 2", 2},
		{"Heading9", 6},  // clamped
		{"Heading", 1},   // unparseable level defaults to 1
		{"Title", 1},
		{"Subtitle", 2},
		{"Rubrik1", 1},   // resolved through styles.xml name
		{"Fancy", 0},     // known style, not a heading
		{"Normal", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			if got := headingLevel(tt.styleID, styles); got != tt.want {
				t.Errorf("headingLevel(%q) = %d, want %d", tt.styleID, got, tt.want)
			}
		})
	}
}

func TestClassifyParagraph(t *testing.T) {
	styles := map[string]ooxml.Style{}

	tests := []struct {
		name string
		rb   rawBlock
		want block
	}{
		{
			name: "plain paragraph",
			rb:   rawBlock{text: "Just text."},
			want: block{kind: blockParagraph, text: "Just text."},
		},
		{
			name: "unknown style degrades to paragraph",
			rb:   rawBlock{text: "Styled.", styleID: "FancyQuote"},
			want: block{kind: blockParagraph, text: "Styled."},
		},
		{
			name: "heading with level",
			rb:   rawBlock{text: "Intro", styleID: "Heading2"},
			want: block{kind: blockHeading, text: "Intro", headingLevel: 2},
		},
		{
			name: "numbered list item from numPr",
			rb:   rawBlock{text: "First", hasNum: true, numID: "3", ilvl: 0},
			want: block{kind: blockListItem, text: "First", listLevel: 0, marker: markerNumbered},
		},
		{
			name: "nested list item from ilvl",
			rb:   rawBlock{text: "Deep", hasNum: true, numID: "3", ilvl: 2},
			want: block{kind: blockListItem, text: "Deep", listLevel: 2, marker: markerNumbered},
		},
		{
			name: "numId zero detaches from list",
			rb:   rawBlock{text: "Not a list.", hasNum: true, numID: "0", ilvl: 0},
			want: block{kind: blockParagraph, text: "Not a list."},
		},
		{
			name: "textual bullet marker",
			rb:   rawBlock{text: "• Alpha"},
			want: block{kind: blockListItem, text: "Alpha", listLevel: 0, marker: markerBullet},
		},
		{
			name: "textual numbered marker",
			rb:   rawBlock{text: "1. Alpha"},
			want: block{kind: blockListItem, text: "Alpha", listLevel: 0, marker: markerNumbered},
		},
		{
			name: "indented textual bullet",
			rb:   rawBlock{text: "\t- Beta"},
			want: block{kind: blockListItem, text: "Beta", listLevel: 1, marker: markerBullet},
		},
		{
			name: "ilvl clamped to supported depth",
			rb:   rawBlock{text: "x", hasNum: true, numID: "3", ilvl: 12},
			want: block{kind: blockListItem, text: "x", listLevel: maxListLevel, marker: markerNumbered},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyParagraph(tt.rb, styles, nil)
			if got.kind != tt.want.kind || got.text != tt.want.text ||
				got.headingLevel != tt.want.headingLevel ||
				got.listLevel != tt.want.listLevel || got.marker != tt.want.marker {
				t.Errorf("classifyParagraph(%#v) = %+v, want %+v", tt.rb, got, tt.want)
			}
		})
	}
}

func TestStripListMarker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"• Bullet", "Bullet"},
		{"◦ Hollow", "Hollow"},
		{"- Dash", "Dash"},
		{"* Star", "Star"},
		{"+ Plus", "Plus"},
		{"1. Numbered", "Numbered"},
		{"12) Parens", "Parens"},
		{"a. Lettered", "Lettered"},
		{"B) Upper", "Upper"},
		{"iv. Roman", "Roman"},
		{"IX) Upper roman", "Upper roman"},
		{"No marker here", "No marker here"},
	}

	for _, tt := range tests {
		if got := stripListMarker(tt.in); got != tt.want {
			t.Errorf("stripListMarker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndentLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"no indent", 0},
		{"  two spaces", 0},
		{"    four spaces", 1},
		{"        eight spaces", 2},
		{"\tone tab", 1},
		{"\t\ttwo tabs", 2},
		{"\t  tab and spaces", 1},
	}

	for _, tt := range tests {
		if got := indentLevel(tt.in); got != tt.want {
			t.Errorf("indentLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClassifyBlocksPassthrough(t *testing.T) {
	raw := []rawBlock{
		{kind: rawTable, cells: [][]string{{"H"}, {"v"}}},
		{kind: rawImage, name: "image1.png", target: "word/media/image1.png"},
		{kind: rawParagraph, text: "tail"},
	}

	blocks := classifyBlocks(raw, nil, nil)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	if blocks[0].kind != blockTable || len(blocks[0].cells) != 2 {
		t.Errorf("block 0 = %+v, want table", blocks[0])
	}
	if blocks[1].kind != blockImage || blocks[1].name != "image1.png" {
		t.Errorf("block 1 = %+v, want image", blocks[1])
	}
	if blocks[2].kind != blockParagraph {
		t.Errorf("block 2 = %+v, want paragraph", blocks[2])
	}
}
