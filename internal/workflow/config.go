package workflow

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/storage"
)

// ArtifactSink receives the files produced by an operation
type ArtifactSink interface {
	SaveArtifact(ctx context.Context, content []byte, filename string) (*storage.Artifact, error)
}

// Optimizer compresses a serialized document
type Optimizer interface {
	Optimize(ctx context.Context, name string, data []byte) ([]byte, error)
}

// ImageImporter builds a PDF with one page per JPEG or PNG image
type ImageImporter interface {
	ImagesToPDF(ctx context.Context, name string, images [][]byte) ([]byte, error)
}

// PageRenderer rasterizes pages of a PDF at zero-based indices
type PageRenderer interface {
	Render(ctx context.Context, name string, data []byte, indices []int, dpi int, fn document.RenderFunc) error
}

// ProcessorConfig holds configuration for a Processor
type ProcessorConfig struct {
	Backend     document.Backend
	Sink        ArtifactSink
	FileSystem  storage.FileSystem // Optional: defaults to the OS filesystem
	Logger      *slog.Logger       // Optional: defaults to slog.Default()
	Retry       *RetryConfig       // Optional: defaults to DefaultRetryConfig
	MaxInputMB  int                // Optional: zero disables the limit
	Concurrency int                // Optional: parallel serializations, defaults to 4
	Scrubber    PreviewScrubber    // Optional: masks personal data in text previews
	Renderer    PageRenderer       // Optional: required by PDFToImages
}

// PreviewScrubber masks personal data in extracted text
type PreviewScrubber interface {
	Scrub(text string) string
}

// Processor runs the document and image operations
type Processor struct {
	backend     document.Backend
	sink        ArtifactSink
	fs          storage.FileSystem
	logger      *slog.Logger
	retry       RetryConfig
	maxInput    int64
	concurrency int
	scrubber    PreviewScrubber
	renderer    PageRenderer
}

// NewProcessor creates a processor with default settings
func NewProcessor(backend document.Backend, sink ArtifactSink) *Processor {
	return NewProcessorWithConfig(ProcessorConfig{Backend: backend, Sink: sink})
}

// NewProcessorWithConfig creates a processor from configuration
func NewProcessorWithConfig(config ProcessorConfig) *Processor {
	p := &Processor{
		backend:     config.Backend,
		sink:        config.Sink,
		fs:          config.FileSystem,
		logger:      config.Logger,
		retry:       DefaultRetryConfig,
		maxInput:    int64(config.MaxInputMB) * 1024 * 1024,
		concurrency: config.Concurrency,
		scrubber:    config.Scrubber,
		renderer:    config.Renderer,
	}

	if p.fs == nil {
		p.fs = storage.NewOSFileSystem()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if config.Retry != nil {
		p.retry = *config.Retry
	}
	if p.concurrency <= 0 {
		p.concurrency = 4
	}

	return p
}

// WithLogger sets a custom logger for the processor
func (p *Processor) WithLogger(logger *slog.Logger) *Processor {
	p.logger = logger
	return p
}

// baseName strips a trailing .pdf extension from a file name
func baseName(filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// stem strips any extension from a file name
func stem(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// outputName trims a user-supplied output name, falls back to def and ensures a .pdf suffix
func outputName(name, def string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = def
	}
	name = filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
