package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/workflow"
)

// ImagesToPDFTool handles the images_to_pdf tool
type ImagesToPDFTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewImagesToPDFTool creates a new image import tool
func NewImagesToPDFTool(processor *workflow.Processor) *ImagesToPDFTool {
	return &ImagesToPDFTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *ImagesToPDFTool) WithLogger(logger *slog.Logger) *ImagesToPDFTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *ImagesToPDFTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Paths      []string `json:"paths"`
		OutputName string   `json:"output_name"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	result, err := t.processor.ImagesToPDF(ctx, workflow.ImagesToPDFRequest{Paths: args.Paths, OutputName: args.OutputName})
	if err != nil {
		t.logger.WarnContext(ctx, "images_to_pdf failed",
			"error", err,
			"inputs", len(args.Paths),
		)
		return errorResult(err), nil
	}

	summary := fmt.Sprintf("PDF generated successfully!\n\nURI: %s\nFile: %s\nPages: %d",
		result.Artifact.URI, result.Artifact.Filename, len(result.Outputs[0].Pages))
	if len(result.Warnings) > 0 {
		summary += "\n\nSkipped:\n- " + strings.Join(result.Warnings, "\n- ")
	}
	return jsonResult(summary, result)
}

// ConvertImageTool handles the convert_image tool
type ConvertImageTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewConvertImageTool creates a new image conversion tool
func NewConvertImageTool(processor *workflow.Processor) *ConvertImageTool {
	return &ConvertImageTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *ConvertImageTool) WithLogger(logger *slog.Logger) *ConvertImageTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *ConvertImageTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path       string `json:"path"`
		Format     string `json:"format"`
		Quality    int    `json:"quality"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		KeepAspect *bool  `json:"keep_aspect"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	keepAspect := true
	if args.KeepAspect != nil {
		keepAspect = *args.KeepAspect
	}

	result, err := t.processor.ConvertImage(ctx, workflow.ConvertImageRequest{
		Path:       args.Path,
		Format:     args.Format,
		Quality:    args.Quality,
		Width:      args.Width,
		Height:     args.Height,
		KeepAspect: keepAspect,
	})
	if err != nil {
		t.logger.WarnContext(ctx, "convert_image failed",
			"error", err,
			"path", args.Path,
			"format", args.Format,
		)
		return errorResult(err), nil
	}

	out := result.Outputs[0]
	summary := fmt.Sprintf("Image converted successfully! Download ready.\n\nURI: %s\nFile: %s\nSize: %dx%d",
		result.Artifact.URI, result.Artifact.Filename, out.Width, out.Height)
	return jsonResult(summary, result)
}

// PDFToImagesTool handles the pdf_to_images tool
type PDFToImagesTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewPDFToImagesTool creates a new page rendering tool
func NewPDFToImagesTool(processor *workflow.Processor) *PDFToImagesTool {
	return &PDFToImagesTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *PDFToImagesTool) WithLogger(logger *slog.Logger) *PDFToImagesTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *PDFToImagesTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path    string `json:"path"`
		Ranges  string `json:"ranges"`
		Format  string `json:"format"`
		Quality int    `json:"quality"`
		DPI     int    `json:"dpi"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	result, err := t.processor.PDFToImages(ctx, workflow.PDFToImagesRequest{
		Path:    args.Path,
		Ranges:  args.Ranges,
		Format:  args.Format,
		Quality: args.Quality,
		DPI:     args.DPI,
	})
	if err != nil {
		t.logger.WarnContext(ctx, "pdf_to_images failed",
			"error", err,
			"path", args.Path,
		)
		return errorResult(err), nil
	}

	summary := fmt.Sprintf("Successfully converted %d pages to images!\n\nURI: %s\nFile: %s",
		len(result.Outputs), result.Artifact.URI, result.Artifact.Filename)
	if len(result.Warnings) > 0 {
		summary += "\n\nSkipped:\n- " + strings.Join(result.Warnings, "\n- ")
	}
	return jsonResult(summary, result)
}
