package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
	ErrFileType     = errors.New("file type is not allowed")
	ErrEmptyFile    = errors.New("file is empty")
	ErrInvalidPath  = errors.New("invalid file path")
)

// Extension allow-lists per resource kind.
var (
	ImagesAndPDF = []string{".jpeg", ".jpg", ".png", ".pdf"}
	PDFOnly      = []string{".pdf"}
)

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Store writes uploads under a base directory, one subdirectory per
// resource, with timestamp-prefixed filenames. Paths returned and accepted
// are relative to the base directory.
type Store struct {
	baseDir string
	maxSize int64
}

func NewStore(baseDir string, maxSizeMB int64) *Store {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &Store{
		baseDir: baseDir,
		maxSize: maxSizeMB << 20,
	}
}

// Save validates and writes the uploaded file, returning its relative path.
// The request blocks until the file is fully on disk.
func (s *Store) Save(file *multipart.FileHeader, resource string, allowedExts []string) (string, error) {
	if file.Size == 0 {
		return "", ErrEmptyFile
	}
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext, allowedExts) {
		return "", ErrFileType
	}
	if !contentTypeAllowed(file.Header.Get("Content-Type"), ext) {
		return "", ErrFileType
	}

	dir := filepath.Join(s.baseDir, resource)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), sanitizeFilename(file.Filename))
	relPath := filepath.Join(resource, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.baseDir, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.baseDir, relPath))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return ErrInvalidPath
	}

	err := os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func extAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// contentTypeAllowed cross-checks the declared MIME type against the
// extension. The declared type is advisory, but an obvious mismatch is
// rejected.
func contentTypeAllowed(contentType, ext string) bool {
	if contentType == "" {
		return true
	}

	switch ext {
	case ".jpeg", ".jpg":
		return contentType == "image/jpeg"
	case ".png":
		return contentType == "image/png"
	case ".pdf":
		return contentType == "application/pdf"
	}
	return false
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeNameRe.ReplaceAllString(base, "_")
}
