package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextPreview extracts up to limit characters of plain text from a PDF.
// A limit of zero or less returns the full text.
func TextPreview(name string, data []byte, limit int) (text string, err error) {
	// the text reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = &LoadError{Name: name, Err: fmt.Errorf("text extraction: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}

	content, err := io.ReadAll(plain)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}

	text = strings.TrimSpace(string(content))
	if limit > 0 {
		runes := []rune(text)
		if len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return text, nil
}
