package ports

import (
	"context"

	"ofertadiff/domain/pricelist"
)

// ReportWriter renders the per-document record sets and the optional diff
// result into the output artifact. Consumes everything read-only; either the
// whole artifact is produced or none of it.
type ReportWriter interface {
	Write(ctx context.Context, path string, sets []*pricelist.RecordSet, diff *pricelist.DiffResult) error
}
