package plainify

import (
	"reflect"
	"testing"

	"github.com/nicholasgasior/plainify-go/internal/ooxml"
)

const docHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
            xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
            xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
            xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"
            xmlns:v="urn:schemas-microsoft-com:vml"><w:body>`

const docFooter = `</w:body></w:document>`

func parseBody(t *testing.T, body string, rels map[string]ooxml.Relationship) []rawBlock {
	t.Helper()
	return parseDocument([]byte(docHeader+body+docFooter), rels)
}

func TestParseDocumentParagraphs(t *testing.T) {
	body := `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>
<w:p><w:r><w:t>First </w:t></w:r><w:r><w:t>and second run.</w:t></w:r></w:p>
<w:p><w:r><w:t></w:t></w:r></w:p>
<w:p><w:r><w:t>Before</w:t></w:r><w:r><w:tab/><w:t>after tab</w:t></w:r></w:p>`

	blocks := parseBody(t, body, nil)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3 (empty paragraph dropped): %+v", len(blocks), blocks)
	}
	if blocks[0].styleID != "Heading1" || blocks[0].text != "Title" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].text != "First and second run." {
		t.Errorf("runs not concatenated: %q", blocks[1].text)
	}
	if blocks[2].text != "Before\tafter tab" {
		t.Errorf("tab not preserved: %q", blocks[2].text)
	}
}

func TestParseDocumentNumbering(t *testing.T) {
	body := `
<w:p><w:pPr><w:numPr><w:ilvl w:val="1"/><w:numId w:val="4"/></w:numPr></w:pPr><w:r><w:t>item</w:t></w:r></w:p>`

	blocks := parseBody(t, body, nil)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if !b.hasNum || b.numID != "4" || b.ilvl != 1 {
		t.Errorf("numbering = hasNum=%v numID=%q ilvl=%d, want true/4/1", b.hasNum, b.numID, b.ilvl)
	}
}

func TestParseDocumentTable(t *testing.T) {
	body := `
<w:tbl>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>Role</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Alice</w:t></w:r></w:p><w:p><w:r><w:t>she/her</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>PM</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>
<w:p><w:r><w:t>after</w:t></w:r></w:p>`

	blocks := parseBody(t, body, nil)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want table + paragraph", len(blocks))
	}
	if blocks[0].kind != rawTable {
		t.Fatalf("block 0 kind = %v, want table", blocks[0].kind)
	}
	want := [][]string{
		{"Name", "Role"},
		{"Alice\nshe/her", "PM"},
	}
	if !reflect.DeepEqual(blocks[0].cells, want) {
		t.Errorf("cells = %#v, want %#v", blocks[0].cells, want)
	}
	if blocks[1].text != "after" {
		t.Errorf("trailing paragraph = %+v", blocks[1])
	}
}

func TestParseDocumentInlineImage(t *testing.T) {
	rels := map[string]ooxml.Relationship{
		"rId5": {ID: "rId5", Type: ooxml.NSRelDoc + "/image", Target: "media/image1.png"},
	}
	body := `
<w:p><w:r><w:t>See the chart:</w:t></w:r>
  <w:r><w:drawing><wp:inline><a:graphic><a:graphicData><pic:pic>
    <pic:blipFill><a:blip r:embed="rId5"/></pic:blipFill>
  </pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>
</w:p>`

	blocks := parseBody(t, body, rels)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want paragraph + image: %+v", len(blocks), blocks)
	}
	if blocks[0].kind != rawParagraph || blocks[0].text != "See the chart:" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	img := blocks[1]
	if img.kind != rawImage || img.name != "image1.png" || img.target != "word/media/image1.png" {
		t.Errorf("image block = %+v", img)
	}
}

func TestParseDocumentLegacyPict(t *testing.T) {
	rels := map[string]ooxml.Relationship{
		"rId9": {ID: "rId9", Target: "media/legacy.jpeg"},
	}
	body := `
<w:p><w:r><w:pict><v:shape><v:imagedata r:id="rId9"/></v:shape></w:pict></w:r></w:p>`

	blocks := parseBody(t, body, rels)
	if len(blocks) != 1 || blocks[0].kind != rawImage {
		t.Fatalf("blocks = %+v, want a single image", blocks)
	}
	if blocks[0].name != "legacy.jpeg" {
		t.Errorf("name = %q", blocks[0].name)
	}
}

func TestParseDocumentUnresolvedImageDropped(t *testing.T) {
	body := `
<w:p><w:r><w:drawing><wp:inline><a:graphic><a:blip r:embed="rIdMissing"/></a:graphic></wp:inline></w:drawing></w:r></w:p>`

	blocks := parseBody(t, body, nil)
	if len(blocks) != 0 {
		t.Errorf("blocks = %+v, want none for an unresolvable image", blocks)
	}
}
