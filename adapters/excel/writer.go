// Package excel renders the consolidated report workbook with excelize:
// one sheet per processed document plus the optional difference sheet.
package excel

import (
	"context"
	"fmt"
	"strings"

	"ofertadiff/domain/pricelist"
	"ofertadiff/internal"
	apperrors "ofertadiff/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DiffSheetName is the fixed name of the difference sheet.
const DiffSheetName = "Diferenças"

// Provenance columns appended to the difference sheet.
const (
	originColumn  = "Origem"
	changedColumn = "Colunas alteradas"
)

// maxSheetNameLen is the workbook format's sheet name limit.
const maxSheetNameLen = 31

// Writer renders record sets and diff results into a single .xlsx artifact.
type Writer struct {
	logger *internal.Logger
}

// NewWriter creates a report writer.
func NewWriter(logger *internal.Logger) *Writer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Writer{logger: logger}
}

// Write produces the whole artifact or nothing: any failure before SaveAs
// leaves no file behind.
func (w *Writer) Write(ctx context.Context, path string, sets []*pricelist.RecordSet, diff *pricelist.DiffResult) error {
	if len(sets) == 0 {
		return apperrors.InvalidInput("no record sets to render")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return apperrors.ReportWriteError(path, err)
	}

	namer := newSheetNamer()
	for i, rs := range sets {
		name := namer.claim(SanitizeSheetName(rs.Label))
		if err := w.addSheet(f, name, i == 0); err != nil {
			return apperrors.ReportWriteError(path, err)
		}
		if err := w.writeDocumentSheet(f, name, rs, titleStyle); err != nil {
			return apperrors.ReportWriteError(path, err)
		}
		w.logger.Info("rendered sheet %q (%d records)", name, rs.Len())
	}

	if diff != nil && !diff.Empty() {
		name := namer.claim(DiffSheetName)
		if err := w.addSheet(f, name, false); err != nil {
			return apperrors.ReportWriteError(path, err)
		}
		if err := w.writeDiffSheet(f, name, diff, titleStyle); err != nil {
			return apperrors.ReportWriteError(path, err)
		}
		w.logger.Info("rendered diff sheet %q (%d entries)", name, len(diff.Entries))
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.ReportWriteError(path, err)
	}
	return nil
}

// addSheet creates a sheet, reusing the workbook's default sheet for the
// first one.
func (w *Writer) addSheet(f *excelize.File, name string, first bool) error {
	if first {
		return f.SetSheetName(f.GetSheetName(0), name)
	}
	_, err := f.NewSheet(name)
	return err
}

// writeDocumentSheet lays out one source document: a merged bold title row,
// the schema header, then every record in extraction order.
func (w *Writer) writeDocumentSheet(f *excelize.File, sheet string, rs *pricelist.RecordSet, titleStyle int) error {
	title := fmt.Sprintf("%s - %s", rs.Filename, strings.ReplaceAll(rs.Label, "_", " "))
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}

	lastCol, err := excelize.CoordinatesToCellName(len(rs.Schema), 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, titleStyle); err != nil {
		return err
	}

	if err := setRow(f, sheet, 2, columnsOf(rs.Schema)); err != nil {
		return err
	}
	for i, rec := range rs.Records {
		row := make([]interface{}, len(rs.Schema))
		for j, col := range rs.Schema {
			row[j] = rec.Get(col)
		}
		if err := setRow(f, sheet, i+3, row); err != nil {
			return err
		}
	}
	return nil
}

// writeDiffSheet lays out the reconciled entries: a merged title naming both
// sources, the schema header extended with provenance columns, one row per
// entry.
func (w *Writer) writeDiffSheet(f *excelize.File, sheet string, diff *pricelist.DiffResult, titleStyle int) error {
	title := fmt.Sprintf("%s x %s", diff.LabelA, diff.LabelB)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}

	header := append(columnsOf(diff.Schema), originColumn, changedColumn)
	lastCol, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, titleStyle); err != nil {
		return err
	}
	if err := setRow(f, sheet, 2, header); err != nil {
		return err
	}

	for i, entry := range diff.Entries {
		row := make([]interface{}, 0, len(header))
		for _, col := range diff.Schema {
			row = append(row, entry.Record.Get(col))
		}
		switch entry.Kind {
		case pricelist.EntryExclusive:
			row = append(row, entry.SourceLabel, "")
		case pricelist.EntryConflict:
			row = append(row, fmt.Sprintf("%s/%s", diff.LabelA, diff.LabelB), strings.Join(entry.DifferingColumns, ", "))
		}
		if err := setRow(f, sheet, i+3, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func columnsOf(schema pricelist.Schema) []interface{} {
	out := make([]interface{}, len(schema))
	for i, col := range schema {
		out[i] = col
	}
	return out
}

// SanitizeSheetName strips characters the workbook format forbids and
// truncates to the sheet name limit.
func SanitizeSheetName(name string) string {
	replacer := strings.NewReplacer(
		`\`, "_", "/", "_", "*", "_", "[", "_", "]", "_", ":", "_", "?", "_",
	)
	name = replacer.Replace(name)
	runes := []rune(name)
	if len(runes) > maxSheetNameLen {
		return string(runes[:maxSheetNameLen])
	}
	return name
}

// sheetNamer resolves sheet name collisions by appending _1, _2, ... in
// first-seen order.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]bool)}
}

func (n *sheetNamer) claim(name string) string {
	candidate := name
	for counter := 1; n.used[candidate]; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	n.used[candidate] = true
	return candidate
}
