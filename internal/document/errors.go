package document

import "fmt"

// LoadError represents a document that could not be parsed
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("failed to load document %s", e.Name)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SaveError represents a serialization failure
type SaveError struct {
	Name string
	Err  error
}

func (e *SaveError) Error() string {
	msg := fmt.Sprintf("failed to serialize document %s", e.Name)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// PageIndexError represents a page index outside the source document
type PageIndexError struct {
	Index     int
	PageCount int
}

func (e *PageIndexError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.PageCount)
}
