package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"testing"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("cv", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["cv"][0]
}

func newTestIntake(t *testing.T) (*IntakeService, string) {
	dir := t.TempDir()
	return NewIntakeService(&config.ExtractionConfig{UploadDir: dir, MaxUploadBytes: 10 * 1024 * 1024}), dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIntakeService_Accept(t *testing.T) {
	intake, dir := newTestIntake(t)

	doc, release, err := intake.Accept(fileHeader(t, "Jane Doe CV.PDF", []byte("%PDF-1.4 fake")))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe CV.PDF", doc.FileName)
	assert.Equal(t, ".pdf", doc.Extension)
	assert.Equal(t, "application/pdf", doc.MIMEType)
	assert.Equal(t, int64(13), doc.Size)
	assert.FileExists(t, doc.Path)
	assert.NotContains(t, doc.Path, "Jane")

	release()
	assert.NoFileExists(t, doc.Path)
	assertDirEmpty(t, dir)

	// Releasing twice is harmless.
	release()
}

func TestIntakeService_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		file    func(t *testing.T) *multipart.FileHeader
		wantErr error
	}{
		{
			name:    "no file",
			file:    func(t *testing.T) *multipart.FileHeader { return nil },
			wantErr: errs.ErrNoFile,
		},
		{
			name:    "executable",
			file:    func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "cv.exe", []byte("MZ")) },
			wantErr: errs.ErrInvalidFileType,
		},
		{
			name:    "no extension",
			file:    func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "cv", []byte("text")) },
			wantErr: errs.ErrInvalidFileType,
		},
		{
			name: "over ten megabytes",
			file: func(t *testing.T) *multipart.FileHeader {
				return fileHeader(t, "cv.pdf", bytes.Repeat([]byte("a"), 10*1024*1024+1))
			},
			wantErr: errs.ErrFileTooLarge,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			intake, dir := newTestIntake(t)
			doc, release, err := intake.Accept(tc.file(t))
			release()
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, doc)
			assertDirEmpty(t, dir)
		})
	}
}

func TestIntakeService_UnderstatedSize(t *testing.T) {
	dir := t.TempDir()
	intake := NewIntakeService(&config.ExtractionConfig{UploadDir: dir, MaxUploadBytes: 8})

	fh := fileHeader(t, "cv.txt", []byte("sixteen bytes!!!"))
	fh.Size = 4

	_, release, err := intake.Accept(fh)
	release()
	assert.ErrorIs(t, err, errs.ErrFileTooLarge)
	assertDirEmpty(t, dir)
}
