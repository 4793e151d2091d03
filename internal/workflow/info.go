package workflow

import (
	"context"
	"path/filepath"

	"github.com/kfreiman/pagesmith/internal/document"
)

// Info loads a PDF and reports its page count, size and optionally a text
// preview of up to previewChars characters. A failed preview is logged and
// left empty.
func (p *Processor) Info(ctx context.Context, path string, previewChars int) (*DocumentInfo, error) {
	data, err := p.readInput(ctx, path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	doc, err := p.backend.Load(ctx, name, data)
	if err != nil {
		return nil, err
	}

	info := &DocumentInfo{
		Path:      path,
		PageCount: doc.PageCount(),
		Size:      int64(len(data)),
	}

	if previewChars > 0 {
		preview, err := document.TextPreview(name, data, previewChars)
		if err != nil {
			p.logger.WarnContext(ctx, "text preview unavailable",
				"error", err,
				"path", path,
			)
		}
		if p.scrubber != nil {
			preview = p.scrubber.Scrub(preview)
		}
		info.Preview = preview
	}

	return info, nil
}
