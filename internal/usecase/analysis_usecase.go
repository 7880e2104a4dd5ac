package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/dto"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/heuristic"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/service"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
)

const fallbackStatement = "Smart rule-based analysis available"

type AnalysisUsecase struct {
	intake    service.IntakeServiceInterface
	extractor service.ExtractionServiceInterface
	ai        service.AIAnalyzerServiceInterface
	cfg       *config.AnalysisConfig

	fallback func(text model.ExtractedText, now time.Time) model.AnalysisResult
	now      func() time.Time
}

func NewAnalysisUsecase(
	intake service.IntakeServiceInterface,
	extractor service.ExtractionServiceInterface,
	ai service.AIAnalyzerServiceInterface,
	cfg *config.AnalysisConfig,
) *AnalysisUsecase {
	return &AnalysisUsecase{
		intake:    intake,
		extractor: extractor,
		ai:        ai,
		cfg:       cfg,
		fallback:  heuristic.Analyze,
		now:       time.Now,
	}
}

// Analyze runs one upload through intake, extraction and analysis.
// The stored upload is removed on every exit path.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, requestID string, file *multipart.FileHeader) (resp *dto.AnalyzeResponseDTO, err error) {
	logCtx := slog.With("requestId", requestID)
	if file != nil {
		logCtx = logCtx.With("fileName", file.Filename)
	}
	p := newPipeline(logCtx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", errs.ErrUnexpected, r)
			resp = nil
			p.fail(err)
		}
	}()

	if err := p.advance(StateValidating); err != nil {
		return nil, err
	}
	doc, release, err := uc.intake.Accept(file)
	defer release()
	if err != nil {
		p.fail(err)
		return nil, err
	}

	if err := p.advance(StateExtracting); err != nil {
		return nil, err
	}
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		p.fail(err)
		return nil, err
	}
	if text.CharCount < uc.cfg.MinTextChars {
		err := &errs.TextLengthError{Length: text.CharCount, Minimum: uc.cfg.MinTextChars}
		p.fail(err)
		return nil, err
	}
	logCtx.Info("text extracted", "chars", text.CharCount, "source", text.Source)

	if err := p.advance(StateAnalyzingAI); err != nil {
		return nil, err
	}
	analysisType := dto.AnalysisTypeAI
	result, err := uc.ai.Analyze(ctx, text)
	if err == nil {
		if verr := result.Validate(); verr != nil {
			err = fmt.Errorf("%w: %v", errs.ErrAIUnavailable, verr)
		}
	}
	if err != nil {
		logCtx.Warn("all AI models failed, using rule-based analysis", "error", err)
		if err := p.advance(StateAnalyzingHeuristic); err != nil {
			return nil, err
		}
		result = uc.fallback(text, uc.now())
		analysisType = dto.AnalysisTypeRuleBased
	}

	if err := p.advance(StateResponding); err != nil {
		return nil, err
	}
	resp = uc.respond(doc, text, result, analysisType)
	if err := p.advance(StateDone); err != nil {
		return nil, err
	}
	logCtx.Info("analysis complete", "type", analysisType, "score", result.OverallScore, "grade", result.Grade)
	return resp, nil
}

func (uc *AnalysisUsecase) respond(doc *model.UploadedDocument, text model.ExtractedText, result model.AnalysisResult, analysisType string) *dto.AnalyzeResponseDTO {
	preview, truncated := util.Truncate(text.Text, uc.cfg.PreviewChars)
	if truncated {
		preview += "..."
	}
	return &dto.AnalyzeResponseDTO{
		Success:     true,
		FileName:    doc.FileName,
		FileType:    doc.Extension,
		TextPreview: preview,
		BasicMetrics: dto.BasicMetricsDTO{
			WordCount:             text.WordCount,
			CharacterCount:        text.CharCount,
			HasEmail:              util.HasEmailMarker(text.Text),
			HasPhone:              util.HasPhoneDigits(text.Text),
			ExtractedSuccessfully: true,
			ExtractionMethod:      string(text.Source),
			PageCount:             text.PageCount,
		},
		AIAnalysis:   result,
		GeneratedAt:  uc.now().UTC(),
		AnalysisType: analysisType,
	}
}

// Health probes the first AI model. It never fails: an unreachable model reports degraded.
func (uc *AnalysisUsecase) Health(ctx context.Context) dto.HealthDTO {
	models := uc.ai.Models()
	health := dto.HealthDTO{
		AIService:       "Groq Cloud AI",
		SupportedModels: models,
		Fallback:        fallbackStatement,
		Timestamp:       uc.now().UTC(),
	}
	if len(models) > 0 {
		health.Model = models[0]
	}

	provider, err := uc.ai.Probe(ctx)
	if err != nil {
		slog.Warn("health check failed", "error", err)
		health.Status = dto.HealthDegraded
		health.Error = err.Error()
		health.Suggestion = "Check API key or internet connection"
		return health
	}
	health.Status = dto.HealthOperational
	health.Provider = provider
	health.Message = "AI analysis service is ready"
	return health
}

// CheckUpload accepts and immediately discards an upload to verify the intake path.
func (uc *AnalysisUsecase) CheckUpload(file *multipart.FileHeader) (*dto.UploadCheckDTO, error) {
	doc, release, err := uc.intake.Accept(file)
	defer release()
	if err != nil {
		return nil, err
	}
	return &dto.UploadCheckDTO{
		Success:      true,
		Message:      "Test endpoint working",
		FileReceived: true,
		FileName:     doc.FileName,
		Size:         doc.Size,
	}, nil
}
