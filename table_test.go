package plainify

import (
	"reflect"
	"testing"
)

func rowMap(r Row) map[string]string {
	m := make(map[string]string, len(r))
	for _, c := range r {
		m[c.Header] = c.Value
	}
	return m
}

func TestExtractTableShortRowPadded(t *testing.T) {
	table, ok := extractTable([][]string{
		{"Name", "Role"},
		{"Alice", "PM"},
		{"Bob"},
	})
	if !ok {
		t.Fatal("extractTable returned ok=false")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	want := []map[string]string{
		{"Name": "Alice", "Role": "PM"},
		{"Name": "Bob", "Role": ""},
	}
	for i, w := range want {
		if got := rowMap(table.Rows[i]); !reflect.DeepEqual(got, w) {
			t.Errorf("row %d = %v, want %v", i, got, w)
		}
	}
}

func TestExtractTableLongRowTruncated(t *testing.T) {
	table, ok := extractTable([][]string{
		{"A", "B"},
		{"1", "2", "3", "4"},
	})
	if !ok {
		t.Fatal("extractTable returned ok=false")
	}
	if len(table.Rows[0]) != 2 {
		t.Fatalf("row width = %d, want 2", len(table.Rows[0]))
	}
	if v, _ := table.Rows[0].Get("B"); v != "2" {
		t.Errorf("B = %q, want 2", v)
	}
}

func TestExtractTableColumnOrder(t *testing.T) {
	table, _ := extractTable([][]string{
		{"Z", "A", "M"},
		{"1", "2", "3"},
	})
	var order []string
	for _, c := range table.Rows[0] {
		order = append(order, c.Header)
	}
	if !reflect.DeepEqual(order, []string{"Z", "A", "M"}) {
		t.Errorf("column order = %v, want source order", order)
	}
}

func TestExtractTableDuplicateHeaders(t *testing.T) {
	table, ok := extractTable([][]string{
		{"X", "X", "X"},
		{"1", "2", "3"},
	})
	if !ok {
		t.Fatal("extractTable returned ok=false")
	}

	var headers []string
	for _, c := range table.Rows[0] {
		headers = append(headers, c.Header)
	}
	if !reflect.DeepEqual(headers, []string{"X", "X_2", "X_3"}) {
		t.Errorf("headers = %v, want [X X_2 X_3]", headers)
	}
	// All three column values survive.
	want := map[string]string{"X": "1", "X_2": "2", "X_3": "3"}
	if got := rowMap(table.Rows[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestExtractTableDuplicateSuffixCollision(t *testing.T) {
	// A literal "X_2" column must not be clobbered by the generated
	// suffix for the duplicate "X".
	table, _ := extractTable([][]string{
		{"X", "X", "X_2"},
		{"1", "2", "3"},
	})
	var headers []string
	for _, c := range table.Rows[0] {
		headers = append(headers, c.Header)
	}
	if !reflect.DeepEqual(headers, []string{"X", "X_3", "X_2"}) {
		t.Errorf("headers = %v, want [X X_3 X_2]", headers)
	}
}

func TestExtractTableDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		cells [][]string
	}{
		{"no rows", nil},
		{"empty header row", [][]string{{"", "  "}, {"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := extractTable(tt.cells); ok {
				t.Error("extractTable returned ok=true, want skipped")
			}
		})
	}
}

func TestExtractTableEmptyRowsDropped(t *testing.T) {
	table, ok := extractTable([][]string{
		{"Name"},
		{""},
		{"Alice"},
		{"   "},
	})
	if !ok {
		t.Fatal("extractTable returned ok=false")
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (empty rows dropped)", len(table.Rows))
	}
	if v, _ := table.Rows[0].Get("Name"); v != "Alice" {
		t.Errorf("Name = %q, want Alice", v)
	}
}

func TestExtractTableHeaderOnly(t *testing.T) {
	table, ok := extractTable([][]string{{"Name", "Role"}})
	if !ok {
		t.Fatal("extractTable returned ok=false")
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}
