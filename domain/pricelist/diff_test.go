package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSet(t *testing.T, label string, schema Schema, rows [][]string) *RecordSet {
	t.Helper()
	all := append([][]string{schema}, rows...)
	rs, err := Normalize(all, 0, schema, NormalizeOptions{Label: label})
	require.NoError(t, err)
	return rs
}

var offerSchema = Schema{"CÓD. REF", "MARCA", "VALOR 3%"}

func TestDiff_PriceChangeProducesConflict(t *testing.T) {
	a := makeSet(t, "01/02/2024", offerSchema, [][]string{{"001", "ACME", "10"}})
	b := makeSet(t, "08/02/2024", offerSchema, [][]string{{"001", "ACME", "12"}})

	result := Diff(a, b)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, EntryConflict, entry.Kind)
	assert.Equal(t, []string{"VALOR 3%"}, entry.DifferingColumns)
	assert.Equal(t, "10/12", entry.Record.Get("VALOR 3%"))
	assert.Equal(t, "ACME", entry.Record.Get("MARCA"))
	assert.Equal(t, "01/02/2024", result.LabelA)
	assert.Equal(t, "08/02/2024", result.LabelB)
}

func TestDiff_KeyOnlyInOneSideIsExclusive(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{{"001", "ACME", "10"}})
	b := makeSet(t, "lista-b", offerSchema, nil)

	result := Diff(a, b)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, EntryExclusive, entry.Kind)
	assert.Equal(t, "lista-a", entry.SourceLabel)
	assert.Equal(t, "001", entry.Record.Key)
}

func TestDiff_IdenticalSetsYieldEmptyResult(t *testing.T) {
	rows := [][]string{{"001", "ACME", "10"}, {"002", "BETA", "7"}}
	a := makeSet(t, "lista-a", offerSchema, rows)
	b := makeSet(t, "lista-b", offerSchema, rows)

	assert.True(t, Diff(a, b).Empty())
	assert.True(t, Diff(a, a).Empty())
}

func TestDiff_OneExclusiveEntryPerOneSidedKey(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{
		{"001", "ACME", "10"},
		{"002", "BETA", "7"},
	})
	b := makeSet(t, "lista-b", offerSchema, [][]string{
		{"002", "BETA", "7"},
		{"003", "GAMA", "3"},
	})

	result := Diff(a, b)

	require.Len(t, result.Entries, 2)
	exclusives := map[string]string{}
	for _, entry := range result.Entries {
		require.Equal(t, EntryExclusive, entry.Kind)
		exclusives[entry.Record.Key] = entry.SourceLabel
	}
	assert.Equal(t, map[string]string{"001": "lista-a", "003": "lista-b"}, exclusives)
}

func TestDiff_TrimmedValuesCompareEqual(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{{"001", " ACME ", "10"}})
	b := makeSet(t, "lista-b", offerSchema, [][]string{{"001", "ACME", " 10 "}})

	assert.True(t, Diff(a, b).Empty())
}

func TestDiff_NoNumericCoercion(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{{"001", "ACME", "10"}})
	b := makeSet(t, "lista-b", offerSchema, [][]string{{"001", "ACME", "10.0"}})

	result := Diff(a, b)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "10/10.0", result.Entries[0].Record.Get("VALOR 3%"))
}

func TestDiff_DifferingColumnsFollowSchemaOrder(t *testing.T) {
	schema := Schema{"CÓD. REF", "MARCA", "PRODUTO", "VALOR 3%", "ESTOQUE"}
	a := makeSet(t, "lista-a", schema, [][]string{{"001", "ACME", "arroz", "10", "50"}})
	b := makeSet(t, "lista-b", schema, [][]string{{"001", "ACME", "feijão", "12", "40"}})

	result := Diff(a, b)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, []string{"PRODUTO", "VALOR 3%", "ESTOQUE"}, result.Entries[0].DifferingColumns)
}

func TestDiff_EntryOrderIsFirstSeenAcrossAThenB(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{
		{"005", "ACME", "1"},
		{"001", "BETA", "2"},
	})
	b := makeSet(t, "lista-b", offerSchema, [][]string{
		{"009", "GAMA", "3"},
		{"001", "BETA", "4"},
	})

	result := Diff(a, b)

	keys := make([]string, len(result.Entries))
	for i, entry := range result.Entries {
		keys[i] = entry.Record.Key
	}
	// 005 exclusive to A, 001 conflicted, 009 exclusive to B
	assert.Equal(t, []string{"005", "001", "009"}, keys)
}

func TestDiff_ColumnsUniqueToSecondSchemaAreIgnored(t *testing.T) {
	a := makeSet(t, "lista-a", Schema{"CÓD. REF", "MARCA"}, [][]string{{"001", "ACME"}})
	b := makeSet(t, "lista-b", Schema{"CÓD. REF", "MARCA", "STATUS"}, [][]string{{"001", "ACME", "novo"}})

	assert.True(t, Diff(a, b).Empty())
}

func TestDiff_MergedRecordIsACopy(t *testing.T) {
	a := makeSet(t, "lista-a", offerSchema, [][]string{{"001", "ACME", "10"}})
	b := makeSet(t, "lista-b", offerSchema, [][]string{{"001", "ACME", "12"}})

	result := Diff(a, b)

	require.Len(t, result.Entries, 1)
	original, ok := a.Lookup("001")
	require.True(t, ok)
	assert.Equal(t, "10", original.Get("VALOR 3%"))
}
