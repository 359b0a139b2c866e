package plainify

import "fmt"

// extractTable converts a cell grid into a Table node. The first row is
// always the header; a table whose header row is entirely empty is
// skipped, as is a table with no rows at all (the bool result is false in
// both cases).
//
// Data rows are padded with empty strings up to the header width and
// truncated past it. Rows whose cells are all empty are dropped.
// Duplicate headers get numeric suffixes ("Name", "Name_2") so no column
// silently overwrites another.
func extractTable(cells [][]string) (*Table, bool) {
	if len(cells) == 0 {
		return nil, false
	}

	headers := make([]string, len(cells[0]))
	empty := true
	for i, h := range cells[0] {
		headers[i] = normalizeText(h)
		if headers[i] != "" {
			empty = false
		}
	}
	if empty {
		return nil, false
	}
	headers = disambiguateHeaders(headers)

	var rows []Row
	for _, src := range cells[1:] {
		row := make(Row, len(headers))
		hasContent := false
		for i, h := range headers {
			value := ""
			if i < len(src) {
				value = normalizeText(src[i])
			}
			if value != "" {
				hasContent = true
			}
			row[i] = Cell{Header: h, Value: value}
		}
		if hasContent {
			rows = append(rows, row)
		}
	}

	return &Table{Rows: rows}, true
}

// disambiguateHeaders suffixes repeated column headers so a mapping-typed
// row cannot lose data: the second occurrence of "X" becomes "X_2". The
// suffix itself is kept collision-free against later literal headers.
func disambiguateHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	taken := make(map[string]bool, len(headers))
	for _, h := range headers {
		taken[h] = true
	}

	out := make([]string, len(headers))
	for i, h := range headers {
		seen[h]++
		if seen[h] == 1 {
			out[i] = h
			continue
		}
		name := fmt.Sprintf("%s_%d", h, seen[h])
		for taken[name] {
			seen[h]++
			name = fmt.Sprintf("%s_%d", h, seen[h])
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
