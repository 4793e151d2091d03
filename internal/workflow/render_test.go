package workflow

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/storage"
)

// stubRenderer draws a page-sized test image per index, scaled by dpi
type stubRenderer struct {
	calls   int
	indices []int
	dpi     int
}

func (r *stubRenderer) Render(ctx context.Context, name string, data []byte, indices []int, dpi int, fn document.RenderFunc) error {
	r.calls++
	r.indices = indices
	r.dpi = dpi
	for _, idx := range indices {
		if err := fn(idx, testImage(dpi/8, dpi/6)); err != nil {
			return err
		}
	}
	return nil
}

func (f *fixture) withRenderer(r PageRenderer) *Processor {
	retry := fastRetry
	return NewProcessorWithConfig(ProcessorConfig{
		Backend:    f.backend,
		Sink:       f.store,
		FileSystem: f.fs,
		Logger:     quietLogger,
		Retry:      &retry,
		Renderer:   r,
	})
}

func TestProcessor_PDFToImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.writePDF(t, "/in/slides.pdf", 4)
	renderer := &stubRenderer{}
	p := f.withRenderer(renderer)

	result, err := p.PDFToImages(ctx, PDFToImagesRequest{Path: "/in/slides.pdf", Ranges: "4, 1-2, 9"})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3}, renderer.indices)
	assert.Equal(t, document.DefaultDPI, renderer.dpi)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "9")

	assert.True(t, result.Bundled())
	assert.Equal(t, storage.ArtifactKindZip, result.Artifact.Kind)
	assert.Equal(t, "slides_images.zip", result.Artifact.Filename)

	data, _, err := f.store.ReadArtifact(ctx, result.Artifact.URI)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, file := range zr.File {
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{"slides_page_1.jpg", "slides_page_2.jpg", "slides_page_4.jpg"}, names)

	for i, page := range []int{1, 2, 4} {
		assert.Equal(t, []int{page}, result.Outputs[i].Pages)
		assert.Equal(t, document.DefaultDPI/8, result.Outputs[i].Width)
	}
}

func TestProcessor_PDFToImagesSinglePage(t *testing.T) {
	f := newFixture(t)
	f.writePDF(t, "/in/one.pdf", 1)
	renderer := &stubRenderer{}

	result, err := f.withRenderer(renderer).PDFToImages(context.Background(), PDFToImagesRequest{
		Path:   "/in/one.pdf",
		Format: "png",
		DPI:    96,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, renderer.indices)
	assert.Equal(t, 96, renderer.dpi)
	assert.Equal(t, storage.ArtifactKindPNG, result.Artifact.Kind)
	assert.Equal(t, "one_page_1.png", result.Artifact.Filename)

	img, format := f.artifactImage(t, result.Artifact.URI)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 12, 16), img.Bounds())
}

func TestProcessor_PDFToImagesErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.writePDF(t, "/in/doc.pdf", 2)
	renderer := &stubRenderer{}
	p := f.withRenderer(renderer)

	t.Run("no renderer", func(t *testing.T) {
		_, err := f.processor.PDFToImages(ctx, PDFToImagesRequest{Path: "/in/doc.pdf"})
		assert.ErrorIs(t, err, ErrRenderUnsupported)
	})

	t.Run("no valid pages", func(t *testing.T) {
		_, err := p.PDFToImages(ctx, PDFToImagesRequest{Path: "/in/doc.pdf", Ranges: "5-9"})
		assert.ErrorIs(t, err, ErrNoValidPages)
	})

	validation := []struct {
		name  string
		req   PDFToImagesRequest
		field string
	}{
		{name: "dpi too high", req: PDFToImagesRequest{Path: "/in/doc.pdf", DPI: MaxDPI + 1}, field: "dpi"},
		{name: "negative dpi", req: PDFToImagesRequest{Path: "/in/doc.pdf", DPI: -72}, field: "dpi"},
		{name: "negative quality", req: PDFToImagesRequest{Path: "/in/doc.pdf", Quality: -1}, field: "quality"},
		{name: "unknown format", req: PDFToImagesRequest{Path: "/in/doc.pdf", Format: "gif"}, field: "format"},
		{name: "not a pdf", req: PDFToImagesRequest{Path: "/in/doc.png"}, field: "path"},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.PDFToImages(ctx, tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	assert.Zero(t, renderer.calls)
}
