// Package pricelist holds the tabular offer model and the diff/merge logic
// shared by every adapter: schemas derived from extracted header rows, keyed
// records, and the reconciliation of two record sets into a difference report.
package pricelist

import (
	"strings"

	"ofertadiff/domain/core"
)

// Schema is the ordered list of column names governing record shape and diff
// column iteration order. The first column is the key column.
type Schema []string

// NewSchema builds a schema from a raw header row, trimming each cell.
// Non-empty names must be unique after trimming; blank header cells are
// tolerated (extracted headers routinely contain them).
func NewSchema(header []string) (Schema, error) {
	if len(header) == 0 {
		return nil, core.ErrEmptySchema
	}
	s := make(Schema, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name != "" && seen[name] {
			return nil, core.NewDuplicateColumnError(name)
		}
		seen[name] = true
		s[i] = name
	}
	return s, nil
}

// KeyColumn returns the designated key column name.
func (s Schema) KeyColumn() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Record is one offer row keyed by the trimmed value of the key column.
type Record struct {
	Key    string            `json:"key"`
	Values map[string]string `json:"values"`
}

// Get returns the trimmed value for a column, empty when absent.
func (r Record) Get(column string) string {
	return r.Values[column]
}

// Clone returns a deep copy of the record. Conflict entries merge into a
// copy so the originating RecordSet stays untouched.
func (r Record) Clone() Record {
	values := make(map[string]string, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Record{Key: r.Key, Values: values}
}

// RecordSet is an ordered, immutable collection of Records sharing one
// Schema, tagged with the source label and origin document.
type RecordSet struct {
	DocumentID core.DocumentID `json:"document_id"`
	Label      string          `json:"label"`
	Filename   string          `json:"filename"`
	Schema     Schema          `json:"schema"`
	Records    []Record        `json:"records"`

	byKey map[string]int
}

// Len returns the number of records in the set.
func (rs *RecordSet) Len() int { return len(rs.Records) }

// Lookup returns the record for a key and whether it exists.
func (rs *RecordSet) Lookup(key string) (Record, bool) {
	i, ok := rs.byKey[key]
	if !ok {
		return Record{}, false
	}
	return rs.Records[i], true
}

// DiffEntryKind distinguishes the two diff result variants.
type DiffEntryKind string

const (
	// EntryExclusive marks a key present in only one of the compared sets.
	EntryExclusive DiffEntryKind = "exclusive"
	// EntryConflict marks a key present in both sets with at least one
	// differing non-key column.
	EntryConflict DiffEntryKind = "conflict"
)

// DiffEntry is one reconciled row of the difference report.
//
// Exclusive entries carry the untouched record plus the label of the single
// source it came from. Conflict entries carry a merged record (base copy of
// side A, differing cells conflated as "a/b") plus the differing columns in
// schema order.
type DiffEntry struct {
	Kind             DiffEntryKind `json:"kind"`
	Record           Record        `json:"record"`
	SourceLabel      string        `json:"source_label,omitempty"`
	DifferingColumns []string      `json:"differing_columns,omitempty"`
}

// DiffResult is the ordered sequence of entries produced by one comparison,
// tagged with both source labels. Immutable once produced.
type DiffResult struct {
	LabelA  string      `json:"label_a"`
	LabelB  string      `json:"label_b"`
	Schema  Schema      `json:"schema"`
	Entries []DiffEntry `json:"entries"`
}

// Empty reports the distinguished "no differences" result.
func (d DiffResult) Empty() bool { return len(d.Entries) == 0 }
