package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// PDFBackend implements Backend on top of pdfcpu
type PDFBackend struct {
	strict bool
	logger *slog.Logger
}

// Option configures a PDFBackend
type Option func(*PDFBackend)

// WithStrictValidation makes Load reject documents that only pass relaxed validation
func WithStrictValidation() Option {
	return func(b *PDFBackend) {
		b.strict = true
	}
}

// WithLogger sets the logger used by the backend
func WithLogger(logger *slog.Logger) Option {
	return func(b *PDFBackend) {
		b.logger = logger
	}
}

// NewPDFBackend creates a pdfcpu-backed document backend
func NewPDFBackend(opts ...Option) *PDFBackend {
	// pdfcpu would otherwise create a config directory under the user's home
	disableConfigDir.Do(api.DisableConfigDir)

	b := &PDFBackend{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// config returns a fresh configuration; pdfcpu mutates it per command
func (b *PDFBackend) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if b.strict {
		conf.ValidationMode = model.ValidationStrict
	}
	return conf
}

// Load validates data and records its page count
func (b *PDFBackend) Load(ctx context.Context, name string, data []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), b.config())
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	doc := &pdfDocument{
		backend: b,
		name:    name,
		data:    data,
	}
	for i := 0; i < pdfCtx.PageCount; i++ {
		doc.pages = append(doc.pages, Page{Source: doc, Index: i})
	}

	b.logger.DebugContext(ctx, "document loaded",
		"name", name,
		"page_count", pdfCtx.PageCount,
		"size", len(data),
	)

	return doc, nil
}

// Create returns an empty document
func (b *PDFBackend) Create(name string) Document {
	return &pdfDocument{backend: b, name: name}
}

// Optimize rewrites a PDF with pdfcpu's stream and resource optimizations
func (b *PDFBackend) Optimize(ctx context.Context, name string, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, b.config()); err != nil {
		return nil, &SaveError{Name: name, Err: err}
	}
	return buf.Bytes(), nil
}

// ImagesToPDF builds a PDF with one page per image, each centered on an A4 page.
// Images must be JPEG or PNG.
func (b *PDFBackend) ImagesToPDF(ctx context.Context, name string, images [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, &SaveError{Name: name, Err: ErrEmptyDocument}
	}

	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = bytes.NewReader(img)
	}

	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, nil, b.config()); err != nil {
		return nil, &SaveError{Name: name, Err: fmt.Errorf("import images: %w", err)}
	}

	b.logger.DebugContext(ctx, "images imported",
		"name", name,
		"images", len(images),
		"size", buf.Len(),
	)

	return buf.Bytes(), nil
}

// pdfDocument holds the source bytes of a loaded PDF, or only a page list for created ones
type pdfDocument struct {
	backend *PDFBackend
	name    string
	data    []byte
	pages   []Page
}

func (d *pdfDocument) Name() string {
	return d.name
}

// PageCount returns the length of the current page list
func (d *pdfDocument) PageCount() int {
	return len(d.pages)
}

func (d *pdfDocument) CopyPages(indices []int) ([]Page, error) {
	count := d.PageCount()
	pages := make([]Page, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= count {
			return nil, &PageIndexError{Index: idx, PageCount: count}
		}
		pages = append(pages, d.pages[idx])
	}
	return pages, nil
}

func (d *pdfDocument) AddPage(page Page) {
	d.pages = append(d.pages, page)
}

// pageRun is a maximal sequence of consecutive pages sharing a source
type pageRun struct {
	source *pdfDocument
	pages  []string
}

func (d *pdfDocument) Serialize(ctx context.Context) ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, &SaveError{Name: d.name, Err: ErrEmptyDocument}
	}

	var runs []*pageRun
	for _, page := range d.pages {
		src, ok := page.Source.(*pdfDocument)
		if !ok || src.data == nil {
			return nil, &SaveError{Name: d.name, Err: fmt.Errorf("page %d has no PDF source", page.Index)}
		}
		if len(runs) == 0 || runs[len(runs)-1].source != src {
			runs = append(runs, &pageRun{source: src})
		}
		last := runs[len(runs)-1]
		// pdfcpu page selections are one-based
		last.pages = append(last.pages, strconv.Itoa(page.Index+1))
	}

	parts := make([]io.ReadSeeker, 0, len(runs))
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := api.Collect(bytes.NewReader(run.source.data), &buf, run.pages, d.backend.config()); err != nil {
			return nil, &SaveError{Name: d.name, Err: fmt.Errorf("collect pages from %s: %w", run.source.name, err)}
		}
		parts = append(parts, bytes.NewReader(buf.Bytes()))
	}

	if len(parts) == 1 {
		return io.ReadAll(parts[0])
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var merged bytes.Buffer
	if err := api.MergeRaw(parts, &merged, false, d.backend.config()); err != nil {
		return nil, &SaveError{Name: d.name, Err: fmt.Errorf("merge page runs: %w", err)}
	}

	d.backend.logger.DebugContext(ctx, "document serialized",
		"name", d.name,
		"pages", len(d.pages),
		"sources", len(runs),
		"size", merged.Len(),
	)

	return merged.Bytes(), nil
}
