package workflow

import (
	"context"

	"github.com/google/uuid"
)

// CompressRequest describes a compress operation
type CompressRequest struct {
	Paths      []string
	OutputName string // defaults to "compressed_document"
}

// Compress combines the inputs into one PDF and rewrites it with the
// backend's optimizer, reporting the size reduction against the inputs.
func (p *Processor) Compress(ctx context.Context, req CompressRequest) (*Result, error) {
	jobID := uuid.NewString()
	logger := p.logger.With("job_id", jobID, "operation", "compress")

	optimizer, ok := p.backend.(Optimizer)
	if !ok {
		return nil, ErrOptimizeUnsupported
	}

	result := &Result{JobID: jobID, Operation: "compress"}
	paths := p.filterPDFPaths(ctx, logger, req.Paths, result)
	if len(paths) == 0 {
		return nil, &ValidationError{Field: "paths", Reason: "please select at least one PDF file to compress"}
	}
	result.Sources = paths

	var originalSize int64
	for _, path := range paths {
		info, err := p.fs.Stat(path)
		if err == nil {
			originalSize += info.Size()
		}
	}

	name := outputName(req.OutputName, "compressed_document")
	combined, pages, err := p.combine(ctx, logger, paths, name)
	if err != nil {
		return nil, err
	}

	data, err := combined.Serialize(ctx)
	if err != nil {
		return nil, err
	}
	data, err = optimizer.Optimize(ctx, name, data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to optimize PDF",
			"error", err,
			"output", name,
		)
		return nil, err
	}

	stats := &CompressionStats{
		OriginalSize:   originalSize,
		CompressedSize: int64(len(data)),
	}
	if originalSize > 0 {
		stats.Reduction = float64(originalSize-stats.CompressedSize) / float64(originalSize) * 100
	}
	result.Compression = stats
	result.Outputs = []Output{{Filename: name, Pages: pages, Size: len(data)}}

	result.Artifact, err = p.save(ctx, data, name)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "PDF compression completed",
		"inputs", len(paths),
		"original_size", stats.OriginalSize,
		"compressed_size", stats.CompressedSize,
		"reduction_percent", stats.Reduction,
		"artifact", result.Artifact.URI,
	)

	return result, nil
}
