package workflow

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/imaging"
	"github.com/kfreiman/pagesmith/internal/pagerange"
)

// MaxDPI bounds the render resolution
const MaxDPI = 600

// PDFToImagesRequest describes a page rendering operation
type PDFToImagesRequest struct {
	Path    string
	Ranges  string // empty renders every page
	Format  string // jpeg (default) or png
	Quality int    // JPEG quality 1-100, defaults to 90
	DPI     int    // defaults to 144
}

// PDFToImages renders the selected pages to images. A single page is
// delivered as-is; several are bundled into a zip archive.
func (p *Processor) PDFToImages(ctx context.Context, req PDFToImagesRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "pdf_to_images")

	if p.renderer == nil {
		return nil, ErrRenderUnsupported
	}
	format, err := imaging.ParseFormat(req.Format)
	if err != nil {
		return nil, &ValidationError{Field: "format", Value: req.Format, Reason: "must be 'jpeg' or 'png'"}
	}
	if err := validateQuality(req.Quality); err != nil {
		return nil, err
	}
	dpi := req.DPI
	if dpi == 0 {
		dpi = document.DefaultDPI
	}
	if dpi < 1 || dpi > MaxDPI {
		return nil, &ValidationError{Field: "dpi", Value: fmt.Sprint(req.DPI), Reason: fmt.Sprintf("must be between 1 and %d", MaxDPI)}
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

	result := &Result{
		JobID:     jobID,
		Operation: "pdf_to_images",
		Sources:   []string{req.Path},
	}

	indices := document.AllIndices(src.PageCount())
	if strings.TrimSpace(req.Ranges) != "" {
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
		indices = sel.Indices
	}

	base := baseName(filename)
	files := make([]namedFile, 0, len(indices))
	err = p.renderer.Render(ctx, filename, data, indices, dpi, func(index int, img image.Image) error {
		encoded, err := imaging.Encode(img, format, req.Quality)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s_page_%d%s", base, index+1, format.Extension())
		files = append(files, namedFile{name: name, data: encoded})
		b := img.Bounds()
		result.Outputs = append(result.Outputs, Output{
			Filename: name,
			Pages:    []int{index + 1},
			Size:     len(encoded),
			Width:    b.Dx(),
			Height:   b.Dy(),
		})
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to render pages",
			"error", err,
			"path", req.Path,
		)
		return nil, err
	}

	result.Artifact, err = p.deliver(ctx, files, base+"_images.zip")
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "PDF pages rendered",
		"pages", len(files),
		"dpi", dpi,
		"format", format,
		"artifact", result.Artifact.URI,
	)

	return result, nil
}
