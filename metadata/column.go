package metadata

import "github.com/kadekirby/sas7bdat/format"

// Column describes one column's schema: stable index, name, label, format
// string, semantic type, and its byte length within a row (§3 "Column").
type Column struct {
	Index  int
	Name   string
	Label  string
	Format string
	Type   format.ColumnType
	Length int
}
