package excel

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ofertadiff/domain/pricelist"
)

func testSet(t *testing.T, label, filename string, rows [][]string) *pricelist.RecordSet {
	t.Helper()
	schema := pricelist.Schema{"CÓD. REF", "MARCA", "VALOR 3%"}
	all := append([][]string{schema}, rows...)
	rs, err := pricelist.Normalize(all, 0, schema, pricelist.NormalizeOptions{
		Label:    label,
		Filename: filename,
	})
	require.NoError(t, err)
	return rs
}

func TestWrite_DocumentSheetLayout(t *testing.T) {
	rs := testSet(t, "05/02/2024", "oferta_semana", [][]string{
		{"001", "ACME", "10"},
		{"002", "BETA", "7"},
	})
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := NewWriter(nil).Write(context.Background(), path, []*pricelist.RecordSet{rs}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"05_02_2024"}, f.GetSheetList())

	title, err := f.GetCellValue("05_02_2024", "A1")
	require.NoError(t, err)
	assert.Equal(t, "oferta_semana - 05/02/2024", title)

	header, err := f.GetCellValue("05_02_2024", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CÓD. REF", header)

	key, err := f.GetCellValue("05_02_2024", "A3")
	require.NoError(t, err)
	assert.Equal(t, "001", key)

	price, err := f.GetCellValue("05_02_2024", "C4")
	require.NoError(t, err)
	assert.Equal(t, "7", price)
}

func TestWrite_SheetNameCollisionGetsSuffix(t *testing.T) {
	a := testSet(t, "2024-01-01", "lista_a", [][]string{{"001", "ACME", "10"}})
	b := testSet(t, "2024-01-01", "lista_b", [][]string{{"002", "BETA", "7"}})
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := NewWriter(nil).Write(context.Background(), path, []*pricelist.RecordSet{a, b}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2024-01-01", "2024-01-01_1"}, f.GetSheetList())
}

func TestWrite_DiffSheetRows(t *testing.T) {
	a := testSet(t, "lista-a", "doc_a", [][]string{
		{"001", "ACME", "10"},
		{"002", "BETA", "7"},
	})
	b := testSet(t, "lista-b", "doc_b", [][]string{
		{"001", "ACME", "12"},
	})
	diff := pricelist.Diff(a, b)
	require.Len(t, diff.Entries, 2)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := NewWriter(nil).Write(context.Background(), path, []*pricelist.RecordSet{a, b}, &diff)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), DiffSheetName)

	title, err := f.GetCellValue(DiffSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "lista-a x lista-b", title)

	origin, err := f.GetCellValue(DiffSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Origem", origin)

	// row 3: conflict over key 001
	merged, err := f.GetCellValue(DiffSheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "10/12", merged)
	conflictOrigin, err := f.GetCellValue(DiffSheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "lista-a/lista-b", conflictOrigin)
	changed, err := f.GetCellValue(DiffSheetName, "E3")
	require.NoError(t, err)
	assert.Equal(t, "VALOR 3%", changed)

	// row 4: key 002 exclusive to lista-a
	exclusiveOrigin, err := f.GetCellValue(DiffSheetName, "D4")
	require.NoError(t, err)
	assert.Equal(t, "lista-a", exclusiveOrigin)
}

func TestWrite_EmptyDiffOmitsSheet(t *testing.T) {
	a := testSet(t, "lista-a", "doc_a", [][]string{{"001", "ACME", "10"}})
	b := testSet(t, "lista-b", "doc_b", [][]string{{"001", "ACME", "10"}})
	diff := pricelist.Diff(a, b)
	require.True(t, diff.Empty())

	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := NewWriter(nil).Write(context.Background(), path, []*pricelist.RecordSet{a, b}, &diff)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), DiffSheetName)
}

func TestWrite_NoSetsFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := NewWriter(nil).Write(context.Background(), path, nil, nil)

	assert.Error(t, err)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"05/02/2024", "05_02_2024"},
		{`a\b/c*d[e]f:g?h`, "a_b_c_d_e_f_g_h"},
		{"sem caracteres proibidos", "sem caracteres proibidos"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeSheetName(tc.input), "input %q", tc.input)
	}
}

func TestSheetNamer_SuffixStaysWithinLimit(t *testing.T) {
	namer := newSheetNamer()
	long := strings.Repeat("x", 31)

	assert.Equal(t, long, namer.claim(long))

	next := namer.claim(long)
	assert.Equal(t, strings.Repeat("x", 29)+"_1", next)
	assert.LessOrEqual(t, len([]rune(next)), 31)
}
