package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/google/uuid"
)

// allowedTypes maps every accepted extension to the MIME type recorded for it.
var allowedTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".txt":  "text/plain",
}

type IntakeServiceInterface interface {
	Accept(file *multipart.FileHeader) (*model.UploadedDocument, func(), error)
}

type IntakeService struct {
	uploadDir string
	maxBytes  int64
}

func NewIntakeService(cfg *config.ExtractionConfig) *IntakeService {
	return &IntakeService{
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxUploadBytes,
	}
}

func (s *IntakeService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Validate rejects a file by extension or size without touching the disk.
func (s *IntakeService) Validate(file *multipart.FileHeader) error {
	if file == nil {
		return errs.ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedTypes[ext]; !ok {
		return fmt.Errorf("%w: %q", errs.ErrInvalidFileType, ext)
	}
	if file.Size > s.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrFileTooLarge, file.Size, s.maxBytes)
	}
	return nil
}

// Accept validates the upload and stores it under a unique name in the upload directory.
// The returned release func removes the stored file; callers must defer it.
func (s *IntakeService) Accept(file *multipart.FileHeader) (*model.UploadedDocument, func(), error) {
	if err := s.Validate(file); err != nil {
		return nil, func() {}, err
	}
	if err := s.EnsureUploadDir(); err != nil {
		return nil, func() {}, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("failed to remove uploaded file", "path", path, "error", err)
		}
	}

	size, err := s.store(file, path)
	if err != nil {
		release()
		return nil, func() {}, err
	}

	return &model.UploadedDocument{
		FileName:  file.Filename,
		Extension: ext,
		MIMEType:  allowedTypes[ext],
		Size:      size,
		Path:      path,
	}, release, nil
}

func (s *IntakeService) store(file *multipart.FileHeader, path string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	// The header size is client supplied, so the copy is bounded too.
	size, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return 0, fmt.Errorf("failed to save file: %w", err)
	}
	if size > s.maxBytes {
		return 0, fmt.Errorf("%w: body exceeds %d bytes", errs.ErrFileTooLarge, s.maxBytes)
	}
	return size, nil
}
