package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/pagerange"
)

// SplitMethod selects how a document is split
type SplitMethod string

const (
	// SplitByRange extracts the pages of a range expression into one document
	SplitByRange SplitMethod = "range"
	// SplitEach writes every page to its own document
	SplitEach SplitMethod = "each"
)

// SplitRequest describes a split operation
type SplitRequest struct {
	Path   string
	Method SplitMethod // defaults to SplitByRange
	Ranges string      // e.g. "1-5, 8, 10-12"
}

// plannedOutput is one document to materialize from the source
type plannedOutput struct {
	name    string
	indices []int
}

// Split extracts pages from a PDF. A single resulting document is
// delivered as-is; several are bundled into a zip archive.
func (p *Processor) Split(ctx context.Context, req SplitRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "split")

	method := req.Method
	if method == "" {
		method = SplitByRange
	}
	if method != SplitByRange && method != SplitEach {
		return nil, &ValidationError{Field: "method", Value: string(method), Reason: "must be 'range' or 'each'"}
	}
	if method == SplitByRange && strings.TrimSpace(req.Ranges) == "" {
		return nil, &ValidationError{Field: "ranges", Reason: "please enter page range(s) to extract"}
	}

	data, err := p.readInput(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(req.Path)
	src, err := p.backend.Load(ctx, filename, data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load PDF",
			"error", err,
			"path", req.Path,
		)
		return nil, err
	}

	logger.InfoContext(ctx, "PDF loaded",
		"path", req.Path,
		"page_count", src.PageCount(),
		"method", method,
	)

	result := &Result{
		JobID:     jobID,
		Operation: "split",
		Sources:   []string{req.Path},
	}

	base := baseName(filename)
	var plan []plannedOutput

	switch method {
	case SplitByRange:
		sel := pagerange.Resolve(req.Ranges, src.PageCount())
		for _, w := range sel.Warnings {
			logger.WarnContext(ctx, "skipping invalid range token",
				"token", w.Token,
				"reason", w.Reason,
				"page_count", w.PageCount,
			)
			result.Warnings = append(result.Warnings, w.Error())
		}
		if sel.Empty() {
			return nil, fmt.Errorf("%w (page count: %d)", ErrNoValidPages, src.PageCount())
		}
		plan = append(plan, plannedOutput{name: base + "_extracted.pdf", indices: sel.Indices})

	case SplitEach:
		for i, indices := range pagerange.PlanPerPageSplit(src.PageCount()) {
			plan = append(plan, plannedOutput{
				name:    fmt.Sprintf("%s_page_%d.pdf", base, i+1),
				indices: indices,
			})
		}
	}

	files, err := p.materialize(ctx, logger, src, plan)
	if err != nil {
		return nil, err
	}

	for i, f := range files {
		result.Outputs = append(result.Outputs, Output{
			Filename: f.name,
			Pages:    pageNumbers(plan[i].indices),
			Size:     len(f.data),
		})
	}

	result.Artifact, err = p.deliver(ctx, files, base+"_split.zip")
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "PDF split completed",
		"outputs", len(files),
		"artifact", result.Artifact.URI,
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// materialize copies each planned index set into a new document and serializes it
func (p *Processor) materialize(ctx context.Context, logger *slog.Logger, src document.Document, plan []plannedOutput) ([]namedFile, error) {
	files := make([]namedFile, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, out := range plan {
		g.Go(func() error {
			doc := p.backend.Create(out.name)
			pages, err := src.CopyPages(out.indices)
			if err != nil {
				return err
			}
			for _, page := range pages {
				doc.AddPage(page)
			}

			data, err := doc.Serialize(gctx)
			if err != nil {
				logger.ErrorContext(gctx, "failed to serialize output",
					"error", err,
					"output", out.name,
				)
				return err
			}
			files[i] = namedFile{name: out.name, data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// deliver saves one file directly, or several as a zip named bundleName
func (p *Processor) deliver(ctx context.Context, files []namedFile, bundleName string) (*Artifact, error) {
	switch len(files) {
	case 0:
		return nil, ErrNoOutputs
	case 1:
		return p.save(ctx, files[0].data, files[0].name)
	default:
		archive, err := bundle(files)
		if err != nil {
			return nil, err
		}
		return p.save(ctx, archive, bundleName)
	}
}

func pageNumbers(indices []int) []int {
	numbers := make([]int, len(indices))
	for i, idx := range indices {
		numbers[i] = idx + 1
	}
	return numbers
}
