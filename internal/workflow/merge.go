package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kfreiman/pagesmith/internal/document"
)

// MergeRequest describes a merge operation
type MergeRequest struct {
	Paths      []string
	OutputName string // defaults to "merged_document"
}

// Merge appends every page of the inputs, in input order, into one PDF.
// Inputs without a .pdf extension are skipped with a warning.
func (p *Processor) Merge(ctx context.Context, req MergeRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "merge")

	result := &Result{JobID: jobID, Operation: "merge"}
	paths := p.filterPDFPaths(ctx, logger, req.Paths, result)
	if len(paths) < 2 {
		return nil, &ValidationError{Field: "paths", Reason: "please select at least two PDF files to merge"}
	}
	result.Sources = paths

	name := outputName(req.OutputName, "merged_document")
	merged, pages, err := p.combine(ctx, logger, paths, name)
	if err != nil {
		return nil, err
	}

	data, err := merged.Serialize(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to serialize merged PDF",
			"error", err,
			"output", name,
		)
		return nil, err
	}

	result.Outputs = []Output{{Filename: name, Pages: pages, Size: len(data)}}
	result.Artifact, err = p.save(ctx, data, name)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "PDFs merged",
		"inputs", len(paths),
		"pages", merged.PageCount(),
		"artifact", result.Artifact.URI,
	)

	return result, nil
}

// filterPDFPaths drops inputs that are not PDF files, recording a warning for each
func (p *Processor) filterPDFPaths(ctx context.Context, logger *slog.Logger, paths []string, result *Result) []string {
	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if !isPDFPath(path) {
			msg := fmt.Sprintf("file %q is not a PDF and will be skipped", filepath.Base(path))
			logger.WarnContext(ctx, "skipping non-PDF input", "path", path)
			result.Warnings = append(result.Warnings, msg)
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

// combine loads each input and appends all of its pages to a new document.
// The returned page numbers are positions in the combined document.
func (p *Processor) combine(ctx context.Context, logger *slog.Logger, paths []string, name string) (document.Document, []int, error) {
	combined := p.backend.Create(name)

	for _, path := range paths {
		data, err := p.readInput(ctx, path)
		if err != nil {
			return nil, nil, err
		}

		src, err := p.backend.Load(ctx, filepath.Base(path), data)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load PDF",
				"error", err,
				"path", path,
			)
			return nil, nil, err
		}

		pages, err := src.CopyPages(document.AllIndices(src.PageCount()))
		if err != nil {
			return nil, nil, err
		}
		for _, page := range pages {
			combined.AddPage(page)
		}

		logger.DebugContext(ctx, "input appended",
			"path", path,
			"pages", src.PageCount(),
		)
	}

	return combined, pageNumbers(document.AllIndices(combined.PageCount())), nil
}
