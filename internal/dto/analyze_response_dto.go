package dto

import (
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
)

const (
	AnalysisTypeAI        = "ai-powered"
	AnalysisTypeRuleBased = "rule-based"
)

type BasicMetricsDTO struct {
	WordCount             int    `json:"wordCount"`
	CharacterCount        int    `json:"characterCount"`
	HasEmail              bool   `json:"hasEmail"`
	HasPhone              bool   `json:"hasPhone"`
	ExtractedSuccessfully bool   `json:"extractedSuccessfully"`
	ExtractionMethod      string `json:"extractionMethod"`
	PageCount             int    `json:"pageCount,omitempty"`
}

type AnalyzeResponseDTO struct {
	Success      bool                 `json:"success"`
	FileName     string               `json:"fileName"`
	FileType     string               `json:"fileType"`
	TextPreview  string               `json:"textPreview"`
	BasicMetrics BasicMetricsDTO      `json:"basicMetrics"`
	AIAnalysis   model.AnalysisResult `json:"aiAnalysis"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	AnalysisType string               `json:"analysisType"`
}

type UploadCheckDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	FileReceived bool   `json:"fileReceived"`
	FileName     string `json:"fileName"`
	Size         int64  `json:"size"`
}
