// Package document provides the paged-document backend used by the
// workflow package: load a document, copy pages by zero-based index into a
// new document and serialize it.
package document

import (
	"context"
	"errors"
)

// ErrEmptyDocument is returned when serializing a document without pages
var ErrEmptyDocument = errors.New("document has no pages")

// Backend loads and creates documents
type Backend interface {
	// Load parses data into a Document. Malformed input fails with *LoadError.
	Load(ctx context.Context, name string, data []byte) (Document, error)
	// Create returns an empty Document
	Create(name string) Document
}

// Document is a paged document
type Document interface {
	Name() string
	PageCount() int
	// CopyPages returns handles for the given zero-based indices, in the supplied order
	CopyPages(indices []int) ([]Page, error)
	// AddPage appends a page handle
	AddPage(page Page)
	// Serialize writes the current page list as a new document
	Serialize(ctx context.Context) ([]byte, error)
}

// Page is an opaque handle to one page of a source document
type Page struct {
	Source Document
	Index  int
}

// AllIndices returns [0, pageCount) in order
func AllIndices(pageCount int) []int {
	if pageCount <= 0 {
		return []int{}
	}
	indices := make([]int, pageCount)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
