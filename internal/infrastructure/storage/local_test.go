package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a parsed *multipart.FileHeader the way gin's
// c.FormFile would produce it.
func uploadedFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveAndRemove(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	fh := uploadedFile(t, "photo.png", "image/png", []byte("pngdata"))

	relPath, err := store.Save(fh, "machines", ImagesAndPDF)
	require.NoError(t, err)
	assert.Equal(t, "machines", filepath.Dir(relPath))
	assert.Contains(t, relPath, "photo.png")

	require.NoError(t, store.Remove(relPath))
	// Removing again is not an error.
	require.NoError(t, store.Remove(relPath))
}

func TestSaveRejectsEmptyFile(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	fh := uploadedFile(t, "empty.png", "image/png", nil)

	_, err := store.Save(fh, "machines", ImagesAndPDF)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := NewStore(t.TempDir(), 1)

	big := make([]byte, 2<<20)
	fh := uploadedFile(t, "big.png", "image/png", big)

	_, err := store.Save(fh, "machines", ImagesAndPDF)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	fh := uploadedFile(t, "script.sh", "", []byte("#!/bin/sh"))

	_, err := store.Save(fh, "machines", ImagesAndPDF)
	assert.ErrorIs(t, err, ErrFileType)
}

func TestSaveRejectsContentTypeMismatch(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	fh := uploadedFile(t, "fake.png", "application/pdf", []byte("pdfdata"))

	_, err := store.Save(fh, "machines", ImagesAndPDF)
	assert.ErrorIs(t, err, ErrFileType)
}

func TestSavePDFOnly(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	png := uploadedFile(t, "photo.png", "image/png", []byte("pngdata"))
	_, err := store.Save(png, "reports", PDFOnly)
	assert.ErrorIs(t, err, ErrFileType)

	pdf := uploadedFile(t, "report.pdf", "application/pdf", []byte("pdfdata"))
	relPath, err := store.Save(pdf, "reports", PDFOnly)
	require.NoError(t, err)
	assert.Contains(t, relPath, "report.pdf")
}

func TestSaveSanitizesFilename(t *testing.T) {
	base := t.TempDir()
	store := NewStore(base, 5)

	fh := uploadedFile(t, "weird name!.png", "image/png", []byte("pngdata"))

	relPath, err := store.Save(fh, "machines", ImagesAndPDF)
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(relPath), " ")
	assert.NotContains(t, filepath.Base(relPath), "!")

	_, err = os.Stat(filepath.Join(base, relPath))
	assert.NoError(t, err)
}

func TestRemoveRejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	assert.ErrorIs(t, store.Remove("../etc/passwd"), ErrInvalidPath)
	assert.ErrorIs(t, store.Remove("/etc/passwd"), ErrInvalidPath)
	assert.NoError(t, store.Remove(""))
}
