package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNoFile           = errors.New("no file uploaded")
	ErrInvalidFileType  = errors.New("unsupported file type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrExtractionFailed = errors.New("text extraction failed")
	ErrInsufficientText = errors.New("insufficient text extracted")
	// ErrAIUnavailable never reaches the client, it switches the pipeline to the rule-based analyzer.
	ErrAIUnavailable = errors.New("all AI models failed")
	ErrUnexpected    = errors.New("unexpected pipeline error")
)

type ErrorCode struct {
	Status     int
	Msg        string
	Suggestion string
}

var (
	NoFile = ErrorCode{
		Status:     fiber.StatusBadRequest,
		Msg:        "No file uploaded",
		Suggestion: "Attach your CV in the 'cv' form field",
	}
	InvalidFileType = ErrorCode{
		Status:     fiber.StatusBadRequest,
		Msg:        "Unsupported file type. Use PDF, PNG, JPG, or TXT.",
		Suggestion: "Convert your CV to PDF, PNG, JPG, or TXT and upload it again",
	}
	FileTooLarge = ErrorCode{
		Status:     fiber.StatusBadRequest,
		Msg:        "File too large (max 10MB)",
		Suggestion: "Compress the file or upload a text-based PDF",
	}
	ExtractionFailed = ErrorCode{
		Status:     fiber.StatusBadRequest,
		Msg:        "Could not extract text from file",
		Suggestion: "Try uploading a clearer file or text-based PDF",
	}
	InsufficientText = ErrorCode{
		Status:     fiber.StatusBadRequest,
		Msg:        "Insufficient text extracted",
		Suggestion: "Try uploading a clearer file or text-based PDF",
	}
	Unexpected = ErrorCode{
		Status:     fiber.StatusInternalServerError,
		Msg:        "Analysis failed",
		Suggestion: "Try a different file or check server logs",
	}
)

var table = []struct {
	err  error
	code ErrorCode
}{
	{ErrNoFile, NoFile},
	{ErrInvalidFileType, InvalidFileType},
	{ErrFileTooLarge, FileTooLarge},
	{ErrExtractionFailed, ExtractionFailed},
	{ErrInsufficientText, InsufficientText},
}

// CodeOf maps err to its client-facing code. Anything unknown is Unexpected.
func CodeOf(err error) ErrorCode {
	for _, entry := range table {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return Unexpected
}

// TextLengthError reports how much text was recovered when it fell below the analysis minimum.
type TextLengthError struct {
	Length  int
	Minimum int
}

func (e *TextLengthError) Error() string {
	return fmt.Sprintf("%s: got %d characters, need at least %d", ErrInsufficientText, e.Length, e.Minimum)
}

func (e *TextLengthError) Is(target error) bool {
	return target == ErrInsufficientText
}
