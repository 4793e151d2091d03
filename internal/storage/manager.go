package storage

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when an artifact URI does not resolve to a stored file
var ErrNotFound = errors.New("artifact not found")

// StorageError represents a storage-related failure
type StorageError struct {
	Operation string
	Path      string
	Err       error
}

func (e *StorageError) Error() string {
	msg := fmt.Sprintf("storage error during %s", e.Operation)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path: %s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsRetryable indicates if this storage error is retryable.
// Malformed URIs and missing artifacts are not.
func (e *StorageError) IsRetryable() bool {
	return !errors.Is(e.Err, ErrNotFound) && e.Operation != "parse URI"
}

// ArtifactKind is the type of a stored artifact
type ArtifactKind string

const (
	ArtifactKindPDF  ArtifactKind = "pdf"
	ArtifactKindZip  ArtifactKind = "zip"
	ArtifactKindJPEG ArtifactKind = "jpg"
	ArtifactKindPNG  ArtifactKind = "png"
)

// Kinds lists every artifact kind, in directory order
var Kinds = []ArtifactKind{ArtifactKindPDF, ArtifactKindZip, ArtifactKindJPEG, ArtifactKindPNG}

var mimeTypes = map[ArtifactKind]string{
	ArtifactKindPDF:  "application/pdf",
	ArtifactKindZip:  "application/zip",
	ArtifactKindJPEG: "image/jpeg",
	ArtifactKindPNG:  "image/png",
}

// MIMEType returns the media type of the artifact kind
func (k ArtifactKind) MIMEType() string {
	if mime, ok := mimeTypes[k]; ok {
		return mime
	}
	return "application/octet-stream"
}

// Valid reports whether k is a known artifact kind
func (k ArtifactKind) Valid() bool {
	_, ok := mimeTypes[k]
	return ok
}

// KindForFilename picks the artifact kind from a file extension, defaulting to pdf
func KindForFilename(filename string) ArtifactKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return ArtifactKindZip
	case ".jpg", ".jpeg":
		return ArtifactKindJPEG
	case ".png":
		return ArtifactKindPNG
	default:
		return ArtifactKindPDF
	}
}

const metaSuffix = ".meta.json"

// Artifact describes a stored file
type Artifact struct {
	URI       string       `json:"uri"`
	ID        string       `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Filename  string       `json:"filename"`
	Size      int64        `json:"size"`
	CreatedAt time.Time    `json:"created_at"`
}

// StorageConfig holds configuration for the storage manager
type StorageConfig struct {
	BasePath   string
	DefaultTTL time.Duration
	Logger     *slog.Logger // Optional: defaults to a discard logger
	FileSystem FileSystem   // Optional: defaults to the OS filesystem
}

// StorageManager stores produced artifacts under content-addressed names
type StorageManager struct {
	basePath   string
	defaultTTL time.Duration
	logger     *slog.Logger
	fs         FileSystem
}

// NewStorageManager creates a new storage manager
func NewStorageManager(config StorageConfig) (*StorageManager, error) {
	ctx := context.Background()

	if config.BasePath == "" {
		config.BasePath = "./storage"
	}
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 24 * time.Hour
	}
	if config.FileSystem == nil {
		config.FileSystem = NewOSFileSystem()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for _, kind := range Kinds {
		path := filepath.Join(config.BasePath, string(kind))
		if err := config.FileSystem.MkdirAll(path, 0755); err != nil {
			config.Logger.ErrorContext(ctx, "failed to create storage directory",
				"error", err,
				"path", path,
				"operation", "init",
			)
			return nil, &StorageError{
				Operation: "init - create directory",
				Path:      path,
				Err:       err,
			}
		}
	}

	config.Logger.InfoContext(ctx, "storage manager initialized",
		"base_path", config.BasePath,
		"default_ttl", config.DefaultTTL,
	)

	return &StorageManager{
		basePath:   config.BasePath,
		defaultTTL: config.DefaultTTL,
		logger:     config.Logger,
		fs:         config.FileSystem,
	}, nil
}

// FileSystem returns the filesystem storage writes to
func (sm *StorageManager) FileSystem() FileSystem {
	return sm.fs
}

// GetPath returns the storage directory for an artifact kind
func (sm *StorageManager) GetPath(kind ArtifactKind) string {
	return filepath.Join(sm.basePath, string(kind))
}

// GenerateID returns the hex-encoded SHA-256 of content
func GenerateID(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// BuildURI formats an artifact URI
func BuildURI(kind ArtifactKind, id string) string {
	return fmt.Sprintf("%s://%s", kind, id)
}

// ParseURI parses a URI into artifact kind and ID
func ParseURI(uri string) (ArtifactKind, string, error) {
	scheme, id, ok := strings.Cut(uri, "://")
	if !ok || id == "" {
		return "", "", &StorageError{
			Operation: "parse URI",
			Err:       fmt.Errorf("malformed URI: %s", uri),
		}
	}
	if strings.ContainsAny(id, `/\.`) {
		return "", "", &StorageError{
			Operation: "parse URI",
			Err:       fmt.Errorf("invalid artifact id: %s", id),
		}
	}

	kind := ArtifactKind(scheme)
	if !kind.Valid() {
		return "", "", &StorageError{
			Operation: "parse URI",
			Err:       fmt.Errorf("unsupported URI scheme: %s", scheme),
		}
	}
	return kind, id, nil
}

func (sm *StorageManager) dataPath(kind ArtifactKind, id string) string {
	return filepath.Join(sm.GetPath(kind), id+"."+string(kind))
}

func (sm *StorageManager) metaPath(kind ArtifactKind, id string) string {
	return filepath.Join(sm.GetPath(kind), id+metaSuffix)
}

// SaveArtifact stores content and returns its description. Identical
// content is stored once and the existing artifact is returned.
func (sm *StorageManager) SaveArtifact(ctx context.Context, content []byte, filename string) (*Artifact, error) {
	kind := KindForFilename(filename)
	id := GenerateID(content)
	path := sm.dataPath(kind, id)

	if _, err := sm.fs.Stat(path); err == nil {
		sm.logger.DebugContext(ctx, "artifact already exists (deduplication)",
			"kind", kind,
			"id", id,
			"path", path,
		)
		if existing, err := sm.readMeta(kind, id); err == nil {
			return existing, nil
		}
	}

	artifact := &Artifact{
		URI:       BuildURI(kind, id),
		ID:        id,
		Kind:      kind,
		Filename:  filename,
		Size:      int64(len(content)),
		CreatedAt: time.Now().UTC(),
	}

	if err := sm.fs.WriteFile(path, content, 0644); err != nil {
		sm.logger.ErrorContext(ctx, "failed to save artifact",
			"error", err,
			"kind", kind,
			"id", id,
			"path", path,
			"operation", "save",
		)
		return nil, &StorageError{Operation: "save artifact", Path: path, Err: err}
	}

	meta, err := json.Marshal(artifact)
	if err != nil {
		return nil, &StorageError{Operation: "encode metadata", Path: path, Err: err}
	}
	if err := sm.fs.WriteFile(sm.metaPath(kind, id), meta, 0644); err != nil {
		return nil, &StorageError{Operation: "save metadata", Path: sm.metaPath(kind, id), Err: err}
	}

	sm.logger.InfoContext(ctx, "artifact saved",
		"kind", kind,
		"id", id,
		"path", path,
		"filename", filename,
		"size", artifact.Size,
	)

	return artifact, nil
}

func (sm *StorageManager) readMeta(kind ArtifactKind, id string) (*Artifact, error) {
	path := sm.metaPath(kind, id)
	data, err := sm.fs.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Operation: "read metadata", Path: path, Err: err}
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &StorageError{Operation: "decode metadata", Path: path, Err: err}
	}
	return &artifact, nil
}

// ArtifactInfo returns the metadata of a stored artifact
func (sm *StorageManager) ArtifactInfo(uri string) (*Artifact, error) {
	kind, id, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if _, err := sm.fs.Stat(sm.dataPath(kind, id)); err != nil {
		return nil, &StorageError{Operation: "find artifact", Path: sm.dataPath(kind, id), Err: ErrNotFound}
	}
	return sm.readMeta(kind, id)
}

// ReadArtifact returns the content and metadata of a stored artifact
func (sm *StorageManager) ReadArtifact(ctx context.Context, uri string) ([]byte, *Artifact, error) {
	artifact, err := sm.ArtifactInfo(uri)
	if err != nil {
		sm.logger.ErrorContext(ctx, "failed to resolve artifact",
			"error", err,
			"uri", uri,
			"operation", "read",
		)
		return nil, nil, err
	}

	path := sm.dataPath(artifact.Kind, artifact.ID)
	content, err := sm.fs.ReadFile(path)
	if err != nil {
		sm.logger.ErrorContext(ctx, "failed to read artifact",
			"error", err,
			"path", path,
			"uri", uri,
			"operation", "read",
		)
		return nil, nil, &StorageError{Operation: "read artifact", Path: path, Err: err}
	}

	sm.logger.DebugContext(ctx, "artifact read",
		"uri", uri,
		"path", path,
	)

	return content, artifact, nil
}

// ArtifactExists checks if an artifact exists in storage
func (sm *StorageManager) ArtifactExists(uri string) bool {
	_, err := sm.ArtifactInfo(uri)
	return err == nil
}

// Cleanup removes artifacts older than ttl; zero uses the default TTL
func (sm *StorageManager) Cleanup(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl == 0 {
		ttl = sm.defaultTTL
	}

	cutoff := time.Now().Add(-ttl)
	var removed int64

	for _, kind := range Kinds {
		dir := sm.GetPath(kind)
		entries, err := sm.fs.ReadDir(dir)
		if err != nil {
			sm.logger.ErrorContext(ctx, "failed to read directory for cleanup",
				"error", err,
				"dir", dir,
				"kind", kind,
			)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasSuffix(entry.Name(), metaSuffix) {
				continue
			}
			if !entry.ModTime().Before(cutoff) {
				continue
			}

			id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			if err := sm.fs.Remove(filepath.Join(dir, entry.Name())); err != nil {
				sm.logger.WarnContext(ctx, "failed to remove expired artifact",
					"error", err,
					"id", id,
					"kind", kind,
				)
				continue
			}
			_ = sm.fs.Remove(sm.metaPath(kind, id))
			removed++
		}
	}

	sm.logger.InfoContext(ctx, "storage cleanup completed",
		"removed", removed,
		"ttl", ttl,
	)

	return removed, nil
}

// Stats returns the number of stored artifacts per kind
func (sm *StorageManager) Stats() (map[ArtifactKind]int64, error) {
	all, err := sm.ListAll()
	if err != nil {
		return nil, err
	}
	stats := make(map[ArtifactKind]int64, len(Kinds))
	for _, kind := range Kinds {
		stats[kind] = int64(len(all[kind]))
	}
	return stats, nil
}

// IsAccessible checks if storage is accessible and directories exist
func (sm *StorageManager) IsAccessible() bool {
	if _, err := sm.fs.Stat(sm.basePath); err != nil {
		return false
	}
	for _, kind := range Kinds {
		if _, err := sm.fs.Stat(sm.GetPath(kind)); err != nil {
			return false
		}
	}
	return true
}

// ListAll returns stored artifact IDs by kind, sorted by ID
func (sm *StorageManager) ListAll() (map[ArtifactKind][]string, error) {
	ctx := context.Background()
	result := make(map[ArtifactKind][]string, len(Kinds))

	for _, kind := range Kinds {
		dir := sm.GetPath(kind)
		entries, err := sm.fs.ReadDir(dir)
		if err != nil {
			sm.logger.ErrorContext(ctx, "failed to read directory for listing",
				"error", err,
				"dir", dir,
				"kind", kind,
			)
			return nil, &StorageError{Operation: "list artifacts", Path: dir, Err: err}
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasSuffix(name, metaSuffix) {
				continue
			}
			result[kind] = append(result[kind], strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}

	return result, nil
}
