package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
)

type ExtractionServiceInterface interface {
	Extract(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error)
}

// ExtractionService picks an extraction strategy from the document extension.
type ExtractionService struct {
	pdf PDFServiceInterface
	ocr OCRServiceInterface
}

func NewExtractionService(pdf PDFServiceInterface, ocr OCRServiceInterface) *ExtractionService {
	return &ExtractionService{pdf: pdf, ocr: ocr}
}

func (s *ExtractionService) Extract(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
	switch doc.Extension {
	case ".pdf":
		return s.pdf.Extract(ctx, doc.Path)
	case ".png", ".jpg", ".jpeg":
		return s.extractImage(ctx, doc)
	case ".txt":
		return s.extractPlainText(doc)
	default:
		return model.ExtractedText{}, fmt.Errorf("%w: %q", errs.ErrInvalidFileType, doc.Extension)
	}
}

func (s *ExtractionService) extractImage(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
	slog.Info("extracting text from image", "file", doc.FileName)
	text, err := s.ocr.Recognize(ctx, doc.Path, logProgress(doc.FileName))
	if err != nil {
		return model.ExtractedText{}, fmt.Errorf("%w: %v", errs.ErrExtractionFailed, err)
	}
	if text == "" {
		return model.ExtractedText{}, fmt.Errorf("%w: OCR returned no text", errs.ErrExtractionFailed)
	}
	return model.NewExtractedText(text, model.SourceOCR), nil
}

func (s *ExtractionService) extractPlainText(doc *model.UploadedDocument) (model.ExtractedText, error) {
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return model.ExtractedText{}, fmt.Errorf("%w: failed to read file: %v", errs.ErrExtractionFailed, err)
	}
	text := util.CleanText(strings.ToValidUTF8(string(raw), ""))
	return model.NewExtractedText(text, model.SourcePlainText), nil
}
