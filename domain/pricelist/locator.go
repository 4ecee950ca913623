package pricelist

import (
	"strings"

	"ofertadiff/domain/core"
)

// DefaultHeaderAnchor is the reference-code column marker that identifies the
// header row in extracted price-list tables.
const DefaultHeaderAnchor = "CÓD. REF"

// LocateHeader scans raw rows in order and returns the index and schema of
// the first row containing a cell whose trimmed text equals the anchor token
// (case-sensitive). Returns core.ErrHeaderNotFound when no row matches;
// callers may fall back to treating row 0 as the header.
func LocateHeader(rows [][]string, anchor string) (int, Schema, error) {
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == anchor {
				schema, err := NewSchema(row)
				if err != nil {
					return 0, nil, err
				}
				return i, schema, nil
			}
		}
	}
	return 0, nil, core.NewHeaderNotFoundError(anchor)
}

// FallbackSchema builds a schema from row 0 for the degraded mode used when
// no anchor row exists.
func FallbackSchema(rows [][]string) (Schema, error) {
	if len(rows) == 0 {
		return nil, core.ErrEmptySchema
	}
	return NewSchema(rows[0])
}
