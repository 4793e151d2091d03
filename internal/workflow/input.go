package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validatePath validates a file path to prevent path traversal
func validatePath(path string) error {
	if strings.Contains(path, "..") {
		return &SecurityError{
			Type:    "path_traversal",
			Details: fmt.Sprintf("path contains traversal sequence: %s", path),
		}
	}

	if strings.Contains(path, "\x00") {
		return &SecurityError{
			Type:    "null_byte",
			Details: "path contains null bytes",
		}
	}

	return nil
}

// inputKind is the set of extensions an operation accepts
type inputKind struct {
	extensions []string
	reason     string
}

var (
	pdfInput   = inputKind{extensions: []string{".pdf"}, reason: "please upload a valid PDF file"}
	imageInput = inputKind{
		extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"},
		reason:     "please upload a JPEG, PNG, GIF, WebP, BMP or TIFF image",
	}
)

func (k inputKind) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range k.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// isPDFPath checks the file extension
func isPDFPath(path string) bool {
	return pdfInput.matches(path)
}

// readInput validates and reads a PDF input, retrying transient read failures
func (p *Processor) readInput(ctx context.Context, path string) ([]byte, error) {
	return p.readFile(ctx, path, pdfInput)
}

// readImage validates and reads an image input
func (p *Processor) readImage(ctx context.Context, path string) ([]byte, error) {
	return p.readFile(ctx, path, imageInput)
}

func (p *Processor) readFile(ctx context.Context, path string, kind inputKind) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ValidationError{Field: "path", Reason: "required parameter missing"}
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if !kind.matches(path) {
		return nil, &ValidationError{Field: "path", Value: path, Reason: kind.reason}
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, &ValidationError{Field: "path", Value: path, Reason: "is a directory"}
	}
	if p.maxInput > 0 && info.Size() > p.maxInput {
		return nil, &ValidationError{
			Field:  "path",
			Value:  path,
			Reason: fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), p.maxInput),
		}
	}

	var data []byte
	err = withStorageRetry(ctx, p.retry, "read input", path, func() error {
		var readErr error
		data, readErr = p.fs.ReadFile(path)
		if errors.Is(readErr, os.ErrNotExist) {
			return &FileNotFoundError{Path: path}
		}
		return readErr
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// save hands a produced file to the sink, retrying transient failures
func (p *Processor) save(ctx context.Context, content []byte, filename string) (*Artifact, error) {
	var artifact *Artifact
	err := withStorageRetry(ctx, p.retry, "save artifact", filename, func() error {
		var saveErr error
		artifact, saveErr = p.sink.SaveArtifact(ctx, content, filename)
		return saveErr
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}
