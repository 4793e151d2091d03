package cmd

import (
	"archive/zip"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/workflow"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestImagesToPDFCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 20, 10)
	b := writeImage(t, dir, "b.png", 10, 20)

	out := execute(t, "images-to-pdf", a, b, "--out", dir, "--name", "album")

	assert.Contains(t, out, "album.pdf")
	assert.Contains(t, out, "2 pages")
	assert.FileExists(t, filepath.Join(dir, "album.pdf"))
}

func TestConvertImageCommandJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeImage(t, dir, "photo.png", 80, 40)

	out := execute(t, "convert-image", input, "--width", "40", "--format", "png", "--out", dir, "--json")

	var result workflow.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "photo_converted.png", result.Artifact.Filename)
	assert.Equal(t, 40, result.Outputs[0].Width)
	assert.Equal(t, 20, result.Outputs[0].Height)
	assert.FileExists(t, filepath.Join(dir, "photo_converted.png"))
}

func TestPDFToImagesCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the PDFium WebAssembly runtime")
	}

	dir := t.TempDir()
	input := writeInput(t, dir, "deck.pdf", 2)
	outDir := filepath.Join(dir, "out")

	out := execute(t, "pdf-to-images", input, "--dpi", "36", "--out", outDir)
	assert.Contains(t, out, "deck_images.zip")

	zr, err := zip.OpenReader(filepath.Join(outDir, "deck_images.zip"))
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, file := range zr.File {
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{"deck_page_1.jpg", "deck_page_2.jpg"}, names)
}
