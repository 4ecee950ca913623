package pricelist

import "strings"

// ConflictSeparator joins both sides' values in a conflicted cell, keeping
// the reconciled record one row per key while surfacing both values.
const ConflictSeparator = "/"

// Diff reconciles two record sets into a DiffResult.
//
// Keys are iterated as an ordered union in first-seen order across A then B,
// so output ordering is deterministic and testable. A key present in only
// one set yields exactly one Exclusive entry. A key present in both yields a
// Conflict entry only when at least one non-key column differs after
// trimming; the merged record is a copy of A's record with each differing
// cell replaced by "valueA/valueB". Comparison covers A's schema only -
// columns unique to B's schema are neither compared nor surfaced.
//
// Diff is total over any two well-formed record sets: it has no failure
// path, and Diff(A, A) yields the distinguished empty result.
func Diff(a, b *RecordSet) DiffResult {
	result := DiffResult{
		LabelA: a.Label,
		LabelB: b.Label,
		Schema: a.Schema,
	}

	for _, key := range unionKeys(a, b) {
		recA, inA := a.Lookup(key)
		recB, inB := b.Lookup(key)

		switch {
		case inA && !inB:
			result.Entries = append(result.Entries, DiffEntry{
				Kind:        EntryExclusive,
				Record:      recA,
				SourceLabel: a.Label,
			})
		case inB && !inA:
			result.Entries = append(result.Entries, DiffEntry{
				Kind:        EntryExclusive,
				Record:      recB,
				SourceLabel: b.Label,
			})
		default:
			if entry, conflicted := conflictEntry(a.Schema, recA, recB); conflicted {
				result.Entries = append(result.Entries, entry)
			}
		}
	}

	return result
}

// unionKeys returns the ordered key union, first-seen across A then B.
func unionKeys(a, b *RecordSet) []string {
	seen := make(map[string]struct{}, a.Len()+b.Len())
	keys := make([]string, 0, a.Len()+b.Len())
	for _, rec := range a.Records {
		if _, ok := seen[rec.Key]; !ok {
			seen[rec.Key] = struct{}{}
			keys = append(keys, rec.Key)
		}
	}
	for _, rec := range b.Records {
		if _, ok := seen[rec.Key]; !ok {
			seen[rec.Key] = struct{}{}
			keys = append(keys, rec.Key)
		}
	}
	return keys
}

// conflictEntry compares two records over the schema's non-key columns as
// plain trimmed text - no numeric coercion, no case folding - and builds the
// merged Conflict entry when anything differs.
func conflictEntry(schema Schema, recA, recB Record) (DiffEntry, bool) {
	keyCol := schema.KeyColumn()

	var differing []string
	for _, col := range schema {
		if col == keyCol {
			continue
		}
		if strings.TrimSpace(recA.Get(col)) != strings.TrimSpace(recB.Get(col)) {
			differing = append(differing, col)
		}
	}
	if len(differing) == 0 {
		return DiffEntry{}, false
	}

	merged := recA.Clone()
	for _, col := range differing {
		merged.Values[col] = strings.TrimSpace(recA.Get(col)) + ConflictSeparator + strings.TrimSpace(recB.Get(col))
	}

	return DiffEntry{
		Kind:             EntryConflict,
		Record:           merged,
		DifferingColumns: differing,
	}, true
}
