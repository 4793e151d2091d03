package workflow

import "github.com/kfreiman/pagesmith/internal/storage"

// Artifact is the stored file delivered to the caller
type Artifact = storage.Artifact

// Output describes one document produced by an operation
type Output struct {
	Filename string `json:"filename"`
	Pages    []int  `json:"pages,omitempty"` // one-based page numbers of the source
	Size     int    `json:"size"`
	Width    int    `json:"width,omitempty"` // pixel size of image outputs
	Height   int    `json:"height,omitempty"`
}

// CompressionStats reports the effect of a compress operation
type CompressionStats struct {
	OriginalSize   int64   `json:"original_size"`
	CompressedSize int64   `json:"compressed_size"`
	Reduction      float64 `json:"reduction_percent"`
}

// Result is the outcome of an operation that produces an artifact
type Result struct {
	JobID       string            `json:"job_id"`
	Operation   string            `json:"operation"`
	Sources     []string          `json:"sources"`
	Artifact    *Artifact         `json:"artifact"`
	Outputs     []Output          `json:"outputs"`
	Warnings    []string          `json:"warnings,omitempty"`
	Compression *CompressionStats `json:"compression,omitempty"`
}

// Bundled reports whether the outputs were zipped into one artifact
func (r *Result) Bundled() bool {
	return len(r.Outputs) > 1
}

// DocumentInfo describes a single input document
type DocumentInfo struct {
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Size      int64  `json:"size"`
	Preview   string `json:"preview,omitempty"`
}
