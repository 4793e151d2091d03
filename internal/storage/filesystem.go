package storage

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// FileSystem is the subset of filesystem operations used by storage and the
// workflow readers
type FileSystem interface {
	// MkdirAll creates a directory and any necessary parent directories
	MkdirAll(path string, perm os.FileMode) error
	// Stat returns a FileInfo describing the named file
	Stat(name string) (os.FileInfo, error)
	// ReadFile reads the file and returns its contents
	ReadFile(name string) ([]byte, error)
	// WriteFile writes data to a file
	WriteFile(name string, data []byte, perm os.FileMode) error
	// ReadDir lists a directory sorted by file name
	ReadDir(name string) ([]os.FileInfo, error)
	// Remove removes a named file or empty directory
	Remove(name string) error
	// RemoveAll removes a named directory and any children it contains
	RemoveAll(path string) error
	// Chtimes changes the access and modification times of the named file
	Chtimes(name string, atime, mtime time.Time) error
}

// aferoFileSystem adapts an afero.Fs to FileSystem
type aferoFileSystem struct {
	afero.Afero
}

// NewOSFileSystem returns a FileSystem that uses the actual OS filesystem
func NewOSFileSystem() FileSystem {
	return NewAferoFileSystem(afero.NewOsFs())
}

// NewMemMapFileSystem returns a FileSystem backed by afero's in-memory filesystem
func NewMemMapFileSystem() FileSystem {
	return NewAferoFileSystem(afero.NewMemMapFs())
}

// NewAferoFileSystem wraps an afero.Fs in the FileSystem interface
func NewAferoFileSystem(fs afero.Fs) FileSystem {
	return aferoFileSystem{afero.Afero{Fs: fs}}
}
