// Package tracker implements the daily-record table: locating and upserting
// rows keyed by (date, name) and the service operations the bot commands use.
package tracker

import "github.com/julianstephens/fitbot/internal/schema"

// Locate returns the index of the first data row whose first two cells equal
// (date, name), or -1 if no such row exists. Row 0 is the header row and is
// never a candidate.
func Locate(snapshot [][]string, date, name string) int {
	for i := 1; i < len(snapshot); i++ {
		row := snapshot[i]
		if len(row) > 1 && row[0] == date && row[1] == name {
			return i
		}
	}
	return -1
}

// Upsert maps a set of column writes onto the row keyed by (date, name) and
// returns the updated snapshot plus the target row's index. The snapshot's
// first row must be the header row.
//
// A missing row is synthesized as [date, name, "", ...] and appended. Every
// row is padded to header width on return; rows arrive short when they were
// written under a narrower schema. Writes to column names absent from the
// header row are silently ignored (schema drift tolerance). The operation is
// idempotent for a fixed snapshot, key, and writes.
func Upsert(snapshot [][]string, date, name string, writes map[string]string) ([][]string, int) {
	headers := snapshot[0]

	target := Locate(snapshot, date, name)
	if target < 0 {
		row := make([]string, len(headers))
		row[0] = date
		row[1] = name
		snapshot = append(snapshot, row)
		target = len(snapshot) - 1
	}

	for i := range snapshot {
		snapshot[i] = pad(snapshot[i], len(headers))
	}

	for column, value := range writes {
		if idx := schema.IndexOf(headers, column); idx >= 0 {
			snapshot[target][idx] = value
		}
	}

	return snapshot, target
}

// CellValue returns the cell at the named column of the given row, or "" when
// the row is shorter than the schema or the column is unknown.
func CellValue(headers, row []string, column string) string {
	idx := schema.IndexOf(headers, column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
