package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
)

// ProgressFunc receives advisory OCR progress in percent.
type ProgressFunc func(percent int)

type OCRServiceInterface interface {
	Recognize(ctx context.Context, imagePath string, progress ProgressFunc) (string, error)
}

// TesseractService shells out to the tesseract CLI.
type TesseractService struct {
	binary    string
	languages string
}

func NewTesseractService(cfg *config.ExtractionConfig) *TesseractService {
	return &TesseractService{
		binary:    cfg.TesseractPath,
		languages: cfg.OCRLanguages,
	}
}

// Check verifies tesseract is installed and runnable.
func (s *TesseractService) Check(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, s.binary, "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	slog.Info("tesseract available", "version", strings.Split(string(out), "\n")[0], "languages", s.languages)
	return nil
}

func (s *TesseractService) Recognize(ctx context.Context, imagePath string, progress ProgressFunc) (string, error) {
	report(progress, 0)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, imagePath, "stdout", "-l", s.languages)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, strings.TrimSpace(stderr.String()))
	}

	report(progress, 100)
	return util.CleanText(stdout.String()), nil
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}

// logProgress returns a ProgressFunc that writes debug records for one OCR target.
func logProgress(target string) ProgressFunc {
	return func(percent int) {
		slog.Debug("OCR progress", "target", target, "percent", percent)
	}
}
