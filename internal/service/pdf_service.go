package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"
)

type PDFServiceInterface interface {
	Extract(ctx context.Context, path string) (model.ExtractedText, error)
}

type PDFService struct {
	ocr       OCRServiceInterface
	pageLimit int
	dpi       float64
	minChars  int
	minWords  int

	// Swappable in tests.
	readText  func(path string) (string, error)
	rasterize func(path, dir string, pages int, dpi float64) ([]string, error)
	pageCount func(path string) (int, error)
}

func NewPDFService(ocr OCRServiceInterface, cfg *config.ExtractionConfig) *PDFService {
	pageLimit := cfg.OCRPageLimit
	if pageLimit <= 0 {
		pageLimit = 2
	}
	return &PDFService{
		ocr:       ocr,
		pageLimit: pageLimit,
		dpi:       cfg.OCRDPI,
		minChars:  cfg.PDFMinChars,
		minWords:  cfg.PDFMinWords,
		readText:  readTextLayer,
		rasterize: rasterizePages,
		pageCount: api.PageCountFile,
	}
}

// Extract reads the embedded text layer and falls back to OCR over the first
// pages when the layer looks like a scan. Non-empty OCR output wins; the poor
// text layer is only returned when OCR produced nothing.
func (s *PDFService) Extract(ctx context.Context, path string) (model.ExtractedText, error) {
	logCtx := slog.With("pdf", filepath.Base(path))

	pages, err := s.pageCount(path)
	if err != nil {
		logCtx.Warn("could not read PDF page count", "error", err)
	}

	layer, err := s.readText(path)
	if err != nil {
		logCtx.Warn("PDF text layer unreadable, going to OCR", "error", err)
	}
	layer = util.CleanText(layer)

	if s.goodEnough(layer) {
		result := model.NewExtractedText(layer, model.SourcePDFText)
		result.PageCount = pages
		return result, nil
	}

	logCtx.Info("PDF text quality low, attempting OCR", "chars", len([]rune(layer)), "words", util.WordCount(layer))
	ocrText := s.ocrPages(ctx, path)

	var result model.ExtractedText
	switch {
	case ocrText != "":
		result = model.NewExtractedText(ocrText, model.SourceOCR)
	case layer != "":
		result = model.NewExtractedText(layer, model.SourcePDFText)
	default:
		return model.ExtractedText{}, fmt.Errorf("%w: no text from text layer or OCR", errs.ErrExtractionFailed)
	}
	result.PageCount = pages
	return result, nil
}

func (s *PDFService) goodEnough(text string) bool {
	return len([]rune(text)) >= s.minChars && util.WordCount(text) >= s.minWords
}

// ocrPages rasterizes up to pageLimit pages and OCRs them concurrently.
// A page that fails to render or recognize contributes nothing.
func (s *PDFService) ocrPages(ctx context.Context, path string) string {
	tempDir, err := os.MkdirTemp("", "cv-pages-*")
	if err != nil {
		slog.Error("failed to create temp dir for rasterized pages", "error", err)
		return ""
	}
	defer os.RemoveAll(tempDir)

	images, err := s.rasterize(path, tempDir, s.pageLimit, s.dpi)
	if err != nil {
		slog.Error("PDF rasterization failed", "error", err)
		return ""
	}

	texts := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pageLimit)
	for i, img := range images {
		if img == "" {
			continue
		}
		g.Go(func() error {
			page := i + 1
			text, err := s.ocr.Recognize(gctx, img, logProgress(fmt.Sprintf("page %d", page)))
			if err != nil {
				slog.Warn("OCR failed for page", "page", page, "error", err)
				return nil
			}
			slog.Info("OCR page done", "page", page, "chars", len([]rune(text)))
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	var buf strings.Builder
	for _, text := range texts {
		if text == "" {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n\n")
	}
	return util.CleanText(buf.String())
}

func readTextLayer(path string) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read text buffer: %w", err)
	}
	return buf.String(), nil
}

// rasterizePages renders pages [1, pages] to PNG files in dir.
// The result is index aligned with the page number; failed pages are "".
func rasterizePages(path, dir string, pages int, dpi float64) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	n := min(doc.NumPage(), pages)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			slog.Warn("failed to render page", "page", i+1, "error", err)
			continue
		}
		target := filepath.Join(dir, fmt.Sprintf("page-%d.png", i+1))
		if err := savePNG(target, img); err != nil {
			slog.Warn("failed to save page image", "page", i+1, "error", err)
			continue
		}
		out[i] = target
	}
	return out, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
