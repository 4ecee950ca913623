package pricelist

import (
	"strings"

	"ofertadiff/domain/core"
)

// DuplicatePolicy defines how duplicate keys within one document are handled
type DuplicatePolicy string

const (
	KeepFirst DuplicatePolicy = "keep-first" // Keep first occurrence
	KeepLast  DuplicatePolicy = "keep-last"  // Keep last occurrence (default)
	Reject    DuplicatePolicy = "reject"     // Error on duplicates
)

// ParseDuplicatePolicy validates a policy string, defaulting to KeepLast for
// the empty string.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch DuplicatePolicy(s) {
	case KeepFirst, KeepLast, Reject:
		return DuplicatePolicy(s), true
	case "":
		return KeepLast, true
	default:
		return "", false
	}
}

// NormalizeOptions configures record normalization.
type NormalizeOptions struct {
	DocumentID core.DocumentID
	Label      string
	Filename   string
	Duplicates DuplicatePolicy
}

// Normalize converts the raw rows strictly after headerIdx into a keyed
// RecordSet. Rows whose cell count mismatches the schema are dropped
// silently (PDF extraction routinely produces ragged rows), every surviving
// cell is trimmed, and rows with a blank key cell are dropped (blank
// separator rows embedded in extracted tables). An empty result is valid.
func Normalize(rows [][]string, headerIdx int, schema Schema, opts NormalizeOptions) (*RecordSet, error) {
	policy := opts.Duplicates
	if policy == "" {
		policy = KeepLast
	}

	rs := &RecordSet{
		DocumentID: opts.DocumentID,
		Label:      opts.Label,
		Filename:   opts.Filename,
		Schema:     schema,
		byKey:      make(map[string]int),
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) != len(schema) {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}

		values := make(map[string]string, len(schema))
		for j, col := range schema {
			values[col] = strings.TrimSpace(row[j])
		}
		rec := Record{Key: key, Values: values}

		if prev, seen := rs.byKey[key]; seen {
			switch policy {
			case Reject:
				return nil, core.NewDuplicateKeyError(key)
			case KeepFirst:
				continue
			case KeepLast:
				rs.Records[prev] = rec
				continue
			}
		}
		rs.byKey[key] = len(rs.Records)
		rs.Records = append(rs.Records, rec)
	}

	return rs, nil
}
