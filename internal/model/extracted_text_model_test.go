package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractedText(t *testing.T) {
	got := NewExtractedText("Expérience\n• Go developer", SourceOCR)
	assert.Equal(t, SourceOCR, got.Source)
	assert.Equal(t, 25, got.CharCount)
	assert.Equal(t, 4, got.WordCount)
	assert.Zero(t, got.PageCount)
}
