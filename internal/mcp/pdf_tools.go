package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kfreiman/pagesmith/internal/workflow"
)

// SplitPDFTool handles the split_pdf tool
type SplitPDFTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewSplitPDFTool creates a new split tool
func NewSplitPDFTool(processor *workflow.Processor) *SplitPDFTool {
	return &SplitPDFTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *SplitPDFTool) WithLogger(logger *slog.Logger) *SplitPDFTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *SplitPDFTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path   string `json:"path"`
		Method string `json:"method"`
		Ranges string `json:"ranges"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	result, err := t.processor.Split(ctx, workflow.SplitRequest{
		Path:   args.Path,
		Method: workflow.SplitMethod(args.Method),
		Ranges: args.Ranges,
	})
	if err != nil {
		t.logger.WarnContext(ctx, "split_pdf failed",
			"error", err,
			"path", args.Path,
			"method", args.Method,
		)
		return errorResult(err), nil
	}

	summary := fmt.Sprintf("PDF split successfully! Download ready.\n\nURI: %s\nFile: %s", result.Artifact.URI, result.Artifact.Filename)
	if result.Bundled() {
		summary = fmt.Sprintf("PDFs split and zipped successfully! Download ready.\n\nURI: %s\nFile: %s\nDocuments: %d",
			result.Artifact.URI, result.Artifact.Filename, len(result.Outputs))
	}
	if len(result.Warnings) > 0 {
		summary += "\n\nSkipped:\n- " + strings.Join(result.Warnings, "\n- ")
	}
	return jsonResult(summary, result)
}

// MergePDFsTool handles the merge_pdfs tool
type MergePDFsTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewMergePDFsTool creates a new merge tool
func NewMergePDFsTool(processor *workflow.Processor) *MergePDFsTool {
	return &MergePDFsTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *MergePDFsTool) WithLogger(logger *slog.Logger) *MergePDFsTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *MergePDFsTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Paths      []string `json:"paths"`
		OutputName string   `json:"output_name"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	result, err := t.processor.Merge(ctx, workflow.MergeRequest{Paths: args.Paths, OutputName: args.OutputName})
	if err != nil {
		t.logger.WarnContext(ctx, "merge_pdfs failed",
			"error", err,
			"inputs", len(args.Paths),
		)
		return errorResult(err), nil
	}

	summary := fmt.Sprintf("PDFs merged successfully!\n\nURI: %s\nFile: %s\nPages: %d",
		result.Artifact.URI, result.Artifact.Filename, len(result.Outputs[0].Pages))
	return jsonResult(summary, result)
}

// CompressPDFTool handles the compress_pdf tool
type CompressPDFTool struct {
	processor *workflow.Processor
	logger    *slog.Logger
}

// NewCompressPDFTool creates a new compress tool
func NewCompressPDFTool(processor *workflow.Processor) *CompressPDFTool {
	return &CompressPDFTool{processor: processor, logger: slog.Default()}
}

// WithLogger sets the logger for the tool
func (t *CompressPDFTool) WithLogger(logger *slog.Logger) *CompressPDFTool {
	t.logger = logger
	return t
}

// Call implements the MCP tool interface
func (t *CompressPDFTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Paths      []string `json:"paths"`
		OutputName string   `json:"output_name"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	result, err := t.processor.Compress(ctx, workflow.CompressRequest{Paths: args.Paths, OutputName: args.OutputName})
	if err != nil {
		t.logger.WarnContext(ctx, "compress_pdf failed",
			"error", err,
			"inputs", len(args.Paths),
		)
		return errorResult(err), nil
	}

	stats := result.Compression
	summary := fmt.Sprintf("Compression complete! Original: %.2f MB, Compressed: %.2f MB (%.2f%% reduction).\n\nURI: %s\nFile: %s",
		megabytes(stats.OriginalSize), megabytes(stats.CompressedSize), stats.Reduction,
		result.Artifact.URI, result.Artifact.Filename)
	return jsonResult(summary, result)
}

// PDFInfoTool handles the pdf_info tool
type PDFInfoTool struct {
	processor *workflow.Processor
}

// NewPDFInfoTool creates a new info tool
func NewPDFInfoTool(processor *workflow.Processor) *PDFInfoTool {
	return &PDFInfoTool{processor: processor}
}

// Call implements the MCP tool interface
func (t *PDFInfoTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path         string `json:"path"`
		PreviewChars int    `json:"preview_chars"`
	}
	if err := decodeArguments(request, &args); err != nil {
		return nil, err
	}

	info, err := t.processor.Info(ctx, args.Path, args.PreviewChars)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(fmt.Sprintf("Total Pages: %d", info.PageCount), info)
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
