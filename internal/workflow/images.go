package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/imaging"
)

// ImagesToPDFRequest describes an image-to-PDF conversion
type ImagesToPDFRequest struct {
	Paths      []string
	OutputName string // defaults to "converted_images"
}

// ImagesToPDF places each image on its own page, in input order.
// Inputs that are not images are skipped with a warning.
func (p *Processor) ImagesToPDF(ctx context.Context, req ImagesToPDFRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "images_to_pdf")

	importer, ok := p.backend.(ImageImporter)
	if !ok {
		return nil, ErrImportUnsupported
	}

	result := &Result{JobID: jobID, Operation: "images_to_pdf"}
	paths := make([]string, 0, len(req.Paths))
	for _, path := range req.Paths {
		if !imageInput.matches(path) {
			logger.WarnContext(ctx, "skipping non-image input", "path", path)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("file %q is not an image and will be skipped", filepath.Base(path)))
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, &ValidationError{Field: "paths", Reason: "please select at least one image file"}
	}
	result.Sources = paths

	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := p.pdfReadyImage(ctx, logger, path)
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}

	name := outputName(req.OutputName, "converted_images")
	data, err := importer.ImagesToPDF(ctx, name, images)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build PDF from images",
			"error", err,
			"output", name,
		)
		return nil, err
	}

	result.Outputs = []Output{{
		Filename: name,
		Pages:    pageNumbers(document.AllIndices(len(images))),
		Size:     len(data),
	}}
	result.Artifact, err = p.save(ctx, data, name)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "images converted to PDF",
		"inputs", len(paths),
		"artifact", result.Artifact.URI,
	)

	return result, nil
}

// pdfReadyImage reads an image and re-encodes it as PNG unless it is already JPEG or PNG
func (p *Processor) pdfReadyImage(ctx context.Context, logger *slog.Logger, path string) ([]byte, error) {
	data, err := p.readImage(ctx, path)
	if err != nil {
		return nil, err
	}

	img, format, err := imaging.Decode(filepath.Base(path), data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to decode image",
			"error", err,
			"path", path,
		)
		return nil, err
	}
	if format == "jpeg" || format == "png" {
		return data, nil
	}

	logger.DebugContext(ctx, "re-encoding image as PNG", "path", path, "format", format)
	return imaging.Encode(img, imaging.FormatPNG, 0)
}

// ConvertImageRequest describes a resize or format conversion
type ConvertImageRequest struct {
	Path       string
	Format     string // jpeg (default) or png
	Quality    int    // JPEG quality 1-100, defaults to 90
	Width      int    // zero keeps the source width
	Height     int    // zero keeps the source height
	KeepAspect bool   // fit inside Width x Height without distortion
}

// ConvertImage resizes an image and re-encodes it as JPEG or PNG
func (p *Processor) ConvertImage(ctx context.Context, req ConvertImageRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "convert_image")

	format, err := imaging.ParseFormat(req.Format)
	if err != nil {
		return nil, &ValidationError{Field: "format", Value: req.Format, Reason: "must be 'jpeg' or 'png'"}
	}
	if err := validateQuality(req.Quality); err != nil {
		return nil, err
	}
	if req.Width < 0 || req.Height < 0 {
		return nil, &ValidationError{
			Field:  "size",
			Value:  fmt.Sprintf("%dx%d", req.Width, req.Height),
			Reason: "width and height must not be negative",
		}
	}

	data, err := p.readImage(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(req.Path)
	img, sourceFormat, err := imaging.Decode(filename, data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to decode image",
			"error", err,
			"path", req.Path,
		)
		return nil, err
	}

	bounds := img.Bounds()
	width, height := imaging.FitSize(bounds.Dx(), bounds.Dy(), req.Width, req.Height, req.KeepAspect)
	out, err := imaging.Encode(imaging.Resize(img, width, height), format, req.Quality)
	if err != nil {
		return nil, err
	}

	name := stem(filename) + "_converted" + format.Extension()
	result := &Result{
		JobID:     jobID,
		Operation: "convert_image",
		Sources:   []string{req.Path},
		Outputs:   []Output{{Filename: name, Size: len(out), Width: width, Height: height}},
	}
	result.Artifact, err = p.save(ctx, out, name)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "image converted",
		"source_format", sourceFormat,
		"format", format,
		"width", width,
		"height", height,
		"artifact", result.Artifact.URI,
	)

	return result, nil
}

// validateQuality accepts zero (the default) or 1-100
func validateQuality(quality int) error {
	if quality < 0 || quality > 100 {
		return &ValidationError{Field: "quality", Value: fmt.Sprint(quality), Reason: "must be between 1 and 100"}
	}
	return nil
}
