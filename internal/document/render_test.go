package document

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/document/documenttest"
)

func TestPDFiumRenderer(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the PDFium WebAssembly runtime")
	}

	r := NewPDFiumRenderer(nil)
	t.Cleanup(func() { _ = r.Close() })
	ctx := context.Background()
	data := documenttest.MinimalPDF(3)

	t.Run("renders requested pages in order", func(t *testing.T) {
		var order []int
		var bounds []image.Rectangle
		err := r.Render(ctx, "src.pdf", data, []int{2, 0}, 72, func(index int, img image.Image) error {
			order = append(order, index)
			bounds = append(bounds, img.Bounds())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 0}, order)
		// 612x792 points at 72 dpi
		for _, b := range bounds {
			assert.Equal(t, 612, b.Dx())
			assert.Equal(t, 792, b.Dy())
		}
	})

	t.Run("dpi scales output", func(t *testing.T) {
		var width int
		err := r.Render(ctx, "src.pdf", data, []int{0}, 144, func(_ int, img image.Image) error {
			width = img.Bounds().Dx()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1224, width)
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		called := false
		err := r.Render(ctx, "src.pdf", data, []int{0, 3}, 72, func(int, image.Image) error {
			called = true
			return nil
		})
		var idxErr *PageIndexError
		require.ErrorAs(t, err, &idxErr)
		assert.Equal(t, 3, idxErr.Index)
		assert.Equal(t, 3, idxErr.PageCount)
		assert.False(t, called)
	})

	t.Run("malformed input", func(t *testing.T) {
		err := r.Render(ctx, "junk.pdf", []byte("junk"), []int{0}, 72, func(int, image.Image) error { return nil })
		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("callback error stops rendering", func(t *testing.T) {
		calls := 0
		err := r.Render(ctx, "src.pdf", data, []int{0, 1, 2}, 36, func(int, image.Image) error {
			calls++
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})
}

func TestPDFiumRenderer_Closed(t *testing.T) {
	r := NewPDFiumRenderer(nil)
	require.NoError(t, r.Close())

	err := r.Render(context.Background(), "src.pdf", documenttest.MinimalPDF(1), []int{0}, 72, func(int, image.Image) error { return nil })
	assert.ErrorIs(t, err, ErrRendererClosed)
}
