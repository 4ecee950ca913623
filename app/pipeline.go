// Package app wires the extraction, normalization, diff and report stages
// into the batch pipeline.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"ofertadiff/domain/core"
	"ofertadiff/domain/pricelist"
	"ofertadiff/internal"
	apperrors "ofertadiff/internal/errors"
	"ofertadiff/ports"
)

// LabelFunc derives the source label from per-page document text. The label
// is an opaque string downstream, never parsed as a date.
type LabelFunc func(pages []string) string

// Options configures a pipeline run.
type Options struct {
	HeaderAnchor string
	Duplicates   pricelist.DuplicatePolicy
	LabelFor     LabelFunc
}

// SkippedDocument records a document that contributed nothing to the report.
type SkippedDocument struct {
	Path string
	Err  error
}

// RunResult summarizes one batch run.
type RunResult struct {
	RunID      core.RunID
	Processed  []*pricelist.RecordSet
	Skipped    []SkippedDocument
	Diff       *pricelist.DiffResult
	OutputPath string
}

// Pipeline processes documents sequentially: extract, locate header,
// normalize, then diff the first two surviving sets and render the report.
type Pipeline struct {
	extractor ports.TableExtractor
	writer    ports.ReportWriter
	opts      Options
	logger    *internal.Logger
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(extractor ports.TableExtractor, writer ports.ReportWriter, opts Options, logger *internal.Logger) *Pipeline {
	if opts.HeaderAnchor == "" {
		opts.HeaderAnchor = pricelist.DefaultHeaderAnchor
	}
	if opts.Duplicates == "" {
		opts.Duplicates = pricelist.KeepLast
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{extractor: extractor, writer: writer, opts: opts, logger: logger}
}

// Run processes the documents in input order and writes the report artifact.
// Document-level failures never abort the batch; the only fatal conditions
// are an empty batch, zero surviving documents, and a report that cannot be
// written.
func (p *Pipeline) Run(ctx context.Context, paths []string, outputPath string) (*RunResult, error) {
	if len(paths) == 0 {
		return nil, apperrors.InvalidInput("no documents supplied")
	}

	result := &RunResult{
		RunID:      core.RunID(core.NewID()),
		OutputPath: outputPath,
	}

	for _, path := range paths {
		rs, err := p.processDocument(ctx, path)
		if err != nil {
			p.logger.Warn("skipping %s: %v", path, err)
			result.Skipped = append(result.Skipped, SkippedDocument{Path: path, Err: err})
			continue
		}
		p.logger.Info("processed %s: %d records, label %q", path, rs.Len(), rs.Label)
		result.Processed = append(result.Processed, rs)
	}

	if len(result.Processed) == 0 {
		return result, apperrors.InvalidInput("no document produced any table rows")
	}

	// The diff is only defined over exactly two surviving documents; any
	// other count means no comparison, not an error.
	if len(result.Processed) == 2 {
		diff := pricelist.Diff(result.Processed[0], result.Processed[1])
		result.Diff = &diff
		if diff.Empty() {
			p.logger.Info("documents %q and %q have no differences", diff.LabelA, diff.LabelB)
		}
	}

	if err := p.writer.Write(ctx, outputPath, result.Processed, result.Diff); err != nil {
		return result, err
	}
	p.logger.Info("report written to %s", outputPath)
	return result, nil
}

// processDocument runs one document to completion. The extractor releases
// the document handle before returning, so each document is fully closed
// before the next is opened.
func (p *Pipeline) processDocument(ctx context.Context, path string) (*pricelist.RecordSet, error) {
	rows, err := p.extractor.ExtractRows(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, core.ErrNoTablesFound
	}

	pages, err := p.extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}

	filename := documentName(path)
	label := filename
	if p.opts.LabelFor != nil {
		if l := p.opts.LabelFor(pages); l != "" {
			label = l
		}
	}

	headerIdx, schema, err := pricelist.LocateHeader(rows, p.opts.HeaderAnchor)
	if err != nil {
		// Degraded mode: treat row 0 as the header.
		p.logger.Warn("%s: %v, falling back to first row", path, err)
		headerIdx = 0
		schema, err = pricelist.FallbackSchema(rows)
		if err != nil {
			return nil, err
		}
	}

	return pricelist.Normalize(rows, headerIdx, schema, pricelist.NormalizeOptions{
		DocumentID: core.DocumentID(core.NewID()),
		Label:      label,
		Filename:   filename,
		Duplicates: p.opts.Duplicates,
	})
}

func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
