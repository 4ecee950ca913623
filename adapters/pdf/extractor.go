// Package pdf adapts the tabula PDF library to the TableExtractor port.
package pdf

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"ofertadiff/domain/core"
	"ofertadiff/internal"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
)

// Extractor reads tables and page text from PDF price lists.
type Extractor struct {
	logger *internal.Logger
}

// NewExtractor creates a PDF table extractor.
func NewExtractor(logger *internal.Logger) *Extractor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Extractor{logger: logger}
}

// ExtractRows returns every table row found in the document, flattened in
// page order. Ragged rows are passed through untouched; normalization
// decides what to keep.
func (e *Extractor) ExtractRows(ctx context.Context, path string) ([][]string, error) {
	doc, closeDoc, err := e.parse(path)
	if err != nil {
		return nil, err
	}
	defer closeDoc()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows [][]string
	for _, table := range doc.ExtractTables() {
		tableRows, err := csvRows(table)
		if err != nil {
			return nil, core.NewExtractionError(path, err)
		}
		rows = append(rows, tableRows...)
	}

	e.logger.Debug("extracted %d table rows from %s", len(rows), path)
	return rows, nil
}

// ExtractText returns the document's free text, one entry per page.
func (e *Extractor) ExtractText(ctx context.Context, path string) ([]string, error) {
	doc, closeDoc, err := e.parse(path)
	if err != nil {
		return nil, err
	}
	defer closeDoc()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		var sb strings.Builder
		for _, elem := range page.Elements {
			if textElem, ok := elem.(model.TextElement); ok {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(textElem.GetText())
			}
		}
		pages = append(pages, sb.String())
	}
	return pages, nil
}

// parse opens and parses the document, returning a release function that
// must run before the next document is opened.
func (e *Extractor) parse(path string) (*model.Document, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, core.NewExtractionError(path, err)
	}

	pdfReader, err := reader.NewReader(file)
	if err != nil {
		file.Close()
		return nil, nil, core.NewExtractionError(path, err)
	}

	doc, _, err := tabula.FromReader(pdfReader).Document()
	if err != nil {
		file.Close()
		return nil, nil, core.NewExtractionError(path, err)
	}

	return doc, func() { file.Close() }, nil
}

// csvRows flattens one detected table into raw string rows via its CSV
// rendering, the portable surface tabula guarantees for cell text.
func csvRows(table *model.Table) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(table.ToCSV()))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
