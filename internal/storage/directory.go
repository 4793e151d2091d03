package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DirectorySink writes artifacts under their own file name into a directory
type DirectorySink struct {
	dir string
	fs  FileSystem
}

// NewDirectorySink creates a sink writing to dir, creating it when missing
func NewDirectorySink(fs FileSystem, dir string) (*DirectorySink, error) {
	if fs == nil {
		fs = NewOSFileSystem()
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Operation: "create output directory", Path: dir, Err: err}
	}
	return &DirectorySink{dir: dir, fs: fs}, nil
}

// SaveArtifact writes content to <dir>/<filename>, overwriting an existing file
func (s *DirectorySink) SaveArtifact(ctx context.Context, content []byte, filename string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return nil, &StorageError{Operation: "save artifact", Path: filename, Err: fmt.Errorf("invalid file name")}
	}

	path := filepath.Join(s.dir, name)
	if err := s.fs.WriteFile(path, content, 0644); err != nil {
		return nil, &StorageError{Operation: "save artifact", Path: path, Err: err}
	}

	uri := path
	if abs, err := filepath.Abs(path); err == nil {
		uri = abs
	}

	return &Artifact{
		URI:       "file://" + uri,
		ID:        GenerateID(content),
		Kind:      KindForFilename(name),
		Filename:  name,
		Size:      int64(len(content)),
		CreatedAt: time.Now().UTC(),
	}, nil
}
