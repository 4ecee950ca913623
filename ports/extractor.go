package ports

import "context"

// TableExtractor provides access to the raw tabular content of a source
// document. Implementations must release the document handle before
// returning, including on failure, so the pipeline can open the next
// document safely.
type TableExtractor interface {
	// ExtractRows returns every table row found in the document, in page
	// order. An empty result means the document contributes nothing.
	ExtractRows(ctx context.Context, path string) ([][]string, error)

	// ExtractText returns the document's free text, one entry per page,
	// used only to source the date label for sheet naming.
	ExtractText(ctx context.Context, path string) ([]string, error)
}
