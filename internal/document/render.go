package document

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// DefaultDPI is the render resolution used when none is given
const DefaultDPI = 144

const instanceTimeout = 30 * time.Second

// RenderFunc receives each rendered page. The image is only valid for the
// duration of the call.
type RenderFunc func(index int, img image.Image) error

// PDFiumRenderer rasterizes PDF pages with PDFium compiled to WebAssembly.
// The runtime starts on first use and is shared until Close.
type PDFiumRenderer struct {
	logger *slog.Logger

	// mu serializes renders; a single instance renders one document at a time
	mu      sync.Mutex
	once    sync.Once
	pool    pdfium.Pool
	initErr error
	closed  bool
}

// NewPDFiumRenderer creates a renderer that starts PDFium lazily
func NewPDFiumRenderer(logger *slog.Logger) *PDFiumRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFiumRenderer{logger: logger}
}

// ErrRendererClosed is returned by Render after Close
var ErrRendererClosed = errors.New("renderer closed")

func (r *PDFiumRenderer) start() error {
	if r.closed {
		return ErrRendererClosed
	}
	r.once.Do(func() {
		began := time.Now()
		r.pool, r.initErr = webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  1,
			MaxTotal: 1,
		})
		if r.initErr != nil {
			r.initErr = fmt.Errorf("initialize pdfium: %w", r.initErr)
			return
		}
		r.logger.Debug("pdfium started", "elapsed", time.Since(began))
	})
	return r.initErr
}

// Render rasterizes the pages at the given zero-based indices, in order, and
// passes each image to fn. An out of range index fails with *PageIndexError
// before any page is rendered.
func (r *PDFiumRenderer) Render(ctx context.Context, name string, data []byte, indices []int, dpi int, fn RenderFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.start(); err != nil {
		return err
	}

	instance, err := r.pool.GetInstance(instanceTimeout)
	if err != nil {
		return fmt.Errorf("get pdfium instance: %w", err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	defer func() {
		if _, err := instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document}); err != nil {
			r.logger.Warn("failed to close rendered document", "name", name, "error", err)
		}
	}()

	count, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= count.PageCount {
			return &PageIndexError{Index: idx, PageCount: count.PageCount}
		}
	}

	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
			DPI: dpi,
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{Document: doc.Document, Index: idx},
			},
		})
		if err != nil {
			return fmt.Errorf("render page %d of %s: %w", idx+1, name, err)
		}

		err = fn(idx, rendered.Result.Image)
		rendered.Cleanup()
		if err != nil {
			return err
		}
	}

	r.logger.DebugContext(ctx, "pages rendered",
		"name", name,
		"pages", len(indices),
		"dpi", dpi,
	)

	return nil
}

// Close shuts the PDFium runtime down if it was started
func (r *PDFiumRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.pool == nil {
		return nil
	}
	err := r.pool.Close()
	r.pool = nil
	return err
}
