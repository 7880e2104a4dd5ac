package config

import (
	"os"
	"path/filepath"
	"sync"
)

type ExtractionConfig struct {
	UploadDir      string
	MaxUploadBytes int64

	TesseractPath string
	OCRLanguages  string
	OCRPageLimit  int
	OCRDPI        float64

	// A PDF text layer below either threshold is treated as a scanned document.
	PDFMinChars int
	PDFMinWords int
}

var (
	extractionConfig *ExtractionConfig
	extractionOnce   sync.Once
)

func LoadExtractionConfig() *ExtractionConfig {
	extractionOnce.Do(func() {
		extractionConfig = &ExtractionConfig{
			UploadDir:      getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "cv-analyzer", "uploads")),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
			TesseractPath:  getEnv("TESSERACT_PATH", "tesseract"),
			OCRLanguages:   getEnv("OCR_LANGUAGES", "eng+fra"),
			OCRPageLimit:   getEnvAsInt("OCR_PAGE_LIMIT", 2),
			OCRDPI:         getEnvAsFloat("OCR_DPI", 200),
			PDFMinChars:    getEnvAsInt("PDF_MIN_CHARS", 200),
			PDFMinWords:    getEnvAsInt("PDF_MIN_WORDS", 50),
		}
	})
	return extractionConfig
}
