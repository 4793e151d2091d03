package workflow

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/document"
	"github.com/kfreiman/pagesmith/internal/imaging"
	"github.com/kfreiman/pagesmith/internal/storage"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func (f *fixture) writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, f.fs.MkdirAll("/in", 0755))

	var buf bytes.Buffer
	img := testImage(w, h)
	switch {
	case strings.HasSuffix(path, ".gif"):
		require.NoError(t, gif.Encode(&buf, img, nil))
	case strings.HasSuffix(path, ".jpg"):
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	default:
		require.NoError(t, png.Encode(&buf, img))
	}
	require.NoError(t, f.fs.WriteFile(path, buf.Bytes(), 0644))
}

func (f *fixture) artifactImage(t *testing.T, uri string) (image.Image, string) {
	t.Helper()
	data, _, err := f.store.ReadArtifact(context.Background(), uri)
	require.NoError(t, err)
	img, format, err := imaging.Decode("artifact", data)
	require.NoError(t, err)
	return img, format
}

func TestProcessor_ImagesToPDF(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.writeImage(t, "/in/a.png", 40, 30)
	f.writeImage(t, "/in/b.jpg", 30, 40)
	f.writeImage(t, "/in/c.gif", 20, 20)
	f.writePDF(t, "/in/notes.pdf", 1)

	result, err := f.processor.ImagesToPDF(ctx, ImagesToPDFRequest{
		Paths: []string{"/in/a.png", "/in/notes.pdf", "/in/b.jpg", "/in/c.gif"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/in/a.png", "/in/b.jpg", "/in/c.gif"}, result.Sources)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "notes.pdf")
	assert.Equal(t, "converted_images.pdf", result.Artifact.Filename)
	assert.Equal(t, storage.ArtifactKindPDF, result.Artifact.Kind)
	assert.Equal(t, []int{1, 2, 3}, result.Outputs[0].Pages)
	assert.Equal(t, 3, f.artifactPages(t, result.Artifact.URI))
}

func TestProcessor_ImagesToPDFErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.fs.MkdirAll("/in", 0755))
	require.NoError(t, f.fs.WriteFile("/in/broken.png", []byte("not a png"), 0644))

	t.Run("no images", func(t *testing.T) {
		_, err := f.processor.ImagesToPDF(ctx, ImagesToPDFRequest{Paths: []string{"/in/a.pdf"}})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "paths", vErr.Field)
	})

	t.Run("undecodable image", func(t *testing.T) {
		_, err := f.processor.ImagesToPDF(ctx, ImagesToPDFRequest{Paths: []string{"/in/broken.png"}})
		var decodeErr *imaging.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("missing image", func(t *testing.T) {
		_, err := f.processor.ImagesToPDF(ctx, ImagesToPDFRequest{Paths: []string{"/in/gone.png"}})
		var nfErr *FileNotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})

	t.Run("backend without import", func(t *testing.T) {
		p := NewProcessorWithConfig(ProcessorConfig{Backend: loadOnlyBackend{f.backend}, Sink: f.store, FileSystem: f.fs, Logger: quietLogger})
		_, err := p.ImagesToPDF(ctx, ImagesToPDFRequest{Paths: []string{"/in/broken.png"}})
		assert.ErrorIs(t, err, ErrImportUnsupported)
	})
}

// loadOnlyBackend hides every optional capability of the wrapped backend
type loadOnlyBackend struct {
	document.Backend
}

func TestProcessor_ConvertImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.writeImage(t, "/in/photo.png", 80, 60)

	tests := []struct {
		name         string
		req          ConvertImageRequest
		wantName     string
		wantFormat   string
		wantW, wantH int
	}{
		{
			name:       "defaults to jpeg at source size",
			req:        ConvertImageRequest{Path: "/in/photo.png"},
			wantName:   "photo_converted.jpg",
			wantFormat: "jpeg",
			wantW:      80, wantH: 60,
		},
		{
			name:       "fits inside box",
			req:        ConvertImageRequest{Path: "/in/photo.png", Format: "png", Width: 40, Height: 40, KeepAspect: true},
			wantName:   "photo_converted.png",
			wantFormat: "png",
			wantW:      40, wantH: 30,
		},
		{
			name:       "stretches without aspect",
			req:        ConvertImageRequest{Path: "/in/photo.png", Format: "jpg", Quality: 50, Width: 40, Height: 40},
			wantName:   "photo_converted.jpg",
			wantFormat: "jpeg",
			wantW:      40, wantH: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.processor.ConvertImage(ctx, tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, result.Artifact.Filename)
			require.Len(t, result.Outputs, 1)
			assert.Equal(t, tt.wantW, result.Outputs[0].Width)
			assert.Equal(t, tt.wantH, result.Outputs[0].Height)

			img, format := f.artifactImage(t, result.Artifact.URI)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestProcessor_ConvertImageErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.writeImage(t, "/in/photo.png", 8, 8)
	f.writePDF(t, "/in/doc.pdf", 1)

	tests := []struct {
		name  string
		req   ConvertImageRequest
		field string
	}{
		{name: "unknown format", req: ConvertImageRequest{Path: "/in/photo.png", Format: "tiff"}, field: "format"},
		{name: "quality too high", req: ConvertImageRequest{Path: "/in/photo.png", Quality: 101}, field: "quality"},
		{name: "negative width", req: ConvertImageRequest{Path: "/in/photo.png", Width: -1}, field: "size"},
		{name: "not an image", req: ConvertImageRequest{Path: "/in/doc.pdf"}, field: "path"},
		{name: "missing path", req: ConvertImageRequest{}, field: "path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.processor.ConvertImage(ctx, tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
