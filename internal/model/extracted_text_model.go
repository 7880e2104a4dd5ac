package model

import (
	"strings"
	"unicode/utf8"
)

type ExtractionSource string

const (
	SourcePDFText   ExtractionSource = "pdf-text"
	SourceOCR       ExtractionSource = "ocr"
	SourcePlainText ExtractionSource = "plain-text"
)

type ExtractedText struct {
	Text      string
	Source    ExtractionSource
	CharCount int
	WordCount int
	PageCount int
}

func NewExtractedText(text string, source ExtractionSource) ExtractedText {
	return ExtractedText{
		Text:      text,
		Source:    source,
		CharCount: utf8.RuneCountInString(text),
		WordCount: len(strings.Fields(text)),
	}
}
