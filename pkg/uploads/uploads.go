// Package uploads stores multipart image uploads on disk. A request may
// carry at most MaxFiles images; every file must look like an image both by
// extension and by sniffed content, and must not exceed MaxFileSize bytes.
// A single bad file fails the whole batch before anything is written.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxFileSize is the per-file size cap in bytes.
	MaxFileSize = 1_000_000
	// MaxFiles is the most images a single request may carry.
	MaxFiles = 6
	// FieldName is the multipart field the images arrive under.
	FieldName = "images"
	// URLPrefix is where stored files are served from.
	URLPrefix = "/uploads"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Saver validates and writes uploaded images into a directory.
type Saver struct {
	dir string
}

// NewSaver creates a Saver rooted at dir, creating the directory if needed.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Saver{dir: dir}, nil
}

// SaveImages validates every file header and then writes the files to disk,
// returning their serving paths in upload order. If any file is invalid or
// any write fails, nothing is kept and an error describing the first
// offending file is returned.
func (s *Saver) SaveImages(headers []*multipart.FileHeader) ([]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > MaxFiles {
		return nil, fmt.Errorf("at most %d images may be uploaded, got %d", MaxFiles, len(headers))
	}

	for _, h := range headers {
		if err := validateHeader(h); err != nil {
			return nil, err
		}
	}

	stored := make([]string, 0, len(headers))
	for _, h := range headers {
		p, err := s.saveOne(h)
		if err != nil {
			s.Remove(stored)
			return nil, err
		}
		stored = append(stored, p)
	}
	return stored, nil
}

// Remove deletes previously stored files, best effort. Used as compensating
// cleanup when a write that followed the upload fails.
func (s *Saver) Remove(paths []string) {
	for _, p := range paths {
		name := path.Base(p)
		if name == "." || name == "/" {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}

func validateHeader(h *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file %q is not an allowed image type (jpeg, jpg, png, gif)", h.Filename)
	}
	if h.Size > MaxFileSize {
		return fmt.Errorf("file %q exceeds the %d byte limit", h.Filename, MaxFileSize)
	}
	if declared := h.Header.Get("Content-Type"); declared != "" && !allowedTypes[declared] {
		return fmt.Errorf("file %q declares unsupported media type %q", h.Filename, declared)
	}
	return nil
}

func (s *Saver) saveOne(h *multipart.FileHeader) (string, error) {
	src, err := h.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %q: %w", h.Filename, err)
	}
	defer src.Close()

	// Sniff the real content; the declared header is client-controlled.
	kind, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to sniff uploaded file %q: %w", h.Filename, err)
	}
	if !allowedTypes[kind.String()] {
		return "", fmt.Errorf("file %q content is %s, not an allowed image type", h.Filename, kind)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file %q: %w", h.Filename, err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(h.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create stored file for %q: %w", h.Filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to store uploaded file %q: %w", h.Filename, err)
	}
	return URLPrefix + "/" + name, nil
}
