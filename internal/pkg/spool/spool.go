// Package spool lands uploaded files on local disk for the duration of
// a submission request. Spooled files are transport scratch space, not
// storage: the external webhook owns the durable copy, and every spool
// file is removed before the request completes, success or failure.
package spool

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// Store writes request-scoped files under a base directory.
type Store struct {
	basePath string
}

// NewStore creates a Store rooted at basePath, creating the directory
// if needed.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create spool directory")
		return nil, fmt.Errorf("failed to create spool directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// File is a spooled upload. Remove must be called on every exit path.
type File struct {
	Path     string
	Filename string // original client-supplied name
	Size     int64
	MimeType string
}

// Save copies a multipart upload into the spool under a collision-free
// name and returns its handle.
func (s *Store) Save(fileHeader *multipart.FileHeader) (*File, error) {
	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(s.basePath, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create spool file")
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write spool file")
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}

	return &File{
		Path:     dstPath,
		Filename: fileHeader.Filename,
		Size:     size,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// Read returns the full file content.
func (f *File) Read() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Remove deletes the spool file. Safe to call more than once; a failed
// removal is logged, not returned, since callers run it in cleanup
// paths that must not override the primary error.
func (f *File) Remove() {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", f.Path).Msg("Failed to remove spool file")
	}
}
