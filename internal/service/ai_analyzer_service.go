package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
)

const analysisSystemPrompt = "You are an expert CV analyzer. Return ONLY valid JSON. No explanations, no markdown, just JSON."

const analysisPrompt = `Analyze this CV professionally and return JSON analysis:

CV CONTENT:
%s

ANALYSIS REQUIREMENTS:
1. Score from 0-100 based on: completeness, skills, experience, structure
2. Grade (A+, A, B+, B, C, Needs Improvement)
3. Brief 2-line summary
4. Top 3-5 strengths
5. Top 3-5 weaknesses
6. Section analysis (contact, summary, education, experience, skills, projects)
7. Skills categorization (technical, soft, tools, missing)
8. ATS optimization score & keywords
9. 4-6 specific recommendations
10. Suggested job titles
11. Experience level estimate
12. Salary range estimate

RETURN ONLY VALID JSON with this structure:
{
  "overallScore": 85,
  "grade": "A",
  "summary": "summary here",
  "strengths": ["s1", "s2"],
  "weaknesses": ["w1", "w2"],
  "sectionsAnalysis": {
    "contact": {"present": true, "score": 10, "feedback": "fb"},
    "summary": {"present": true, "score": 8, "feedback": "fb"},
    "education": {"present": true, "score": 9, "feedback": "fb"},
    "experience": {"present": true, "score": 9, "feedback": "fb"},
    "skills": {"present": true, "score": 8, "feedback": "fb"},
    "projects": {"present": true, "score": 7, "feedback": "fb"}
  },
  "skillsAnalysis": {
    "technical": ["tech1", "tech2"],
    "soft": ["soft1", "soft2"],
    "tools": ["tool1", "tool2"],
    "missing": ["miss1", "miss2"]
  },
  "atsOptimization": {
    "score": 75,
    "feedback": "fb here",
    "recommendedKeywords": ["kw1", "kw2"]
  },
  "detailedFeedback": ["fb1", "fb2"],
  "recommendations": ["rec1", "rec2"],
  "suggestedJobTitles": ["job1", "job2"],
  "estimatedExperienceLevel": "level",
  "industryFit": ["ind1"],
  "salaryRange": "range here"
}`

const healthPrompt = "Say 'AI service is operational'"

// ModelAttempt is one entry of the ordered model list.
type ModelAttempt struct {
	Model  string
	Client CompletionServiceInterface
}

type AIAnalyzerConfig struct {
	Attempts      []ModelAttempt
	Timeout       time.Duration
	HealthTimeout time.Duration
	Temperature   float64
	MaxTokens     int
	InputChars    int
}

type AIAnalyzerServiceInterface interface {
	Analyze(ctx context.Context, text model.ExtractedText) (model.AnalysisResult, error)
	Probe(ctx context.Context) (string, error)
	Models() []string
}

type AIAnalyzerService struct {
	cfg AIAnalyzerConfig
	now func() time.Time
}

func NewAIAnalyzerService(cfg AIAnalyzerConfig) *AIAnalyzerService {
	cfg.Attempts = append([]ModelAttempt(nil), cfg.Attempts...)
	return &AIAnalyzerService{cfg: cfg, now: time.Now}
}

// Analyze walks the model list once, in order, and returns the first reply that
// parses into a valid AnalysisResult. It fails with errs.ErrAIUnavailable when none does.
func (s *AIAnalyzerService) Analyze(ctx context.Context, text model.ExtractedText) (model.AnalysisResult, error) {
	input, _ := util.Truncate(text.Text, s.cfg.InputChars)
	req := CompletionRequest{
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   fmt.Sprintf(analysisPrompt, input),
		Temperature:  s.cfg.Temperature,
		MaxTokens:    s.cfg.MaxTokens,
		JSONOutput:   true,
	}

	var failures []error
	for _, attempt := range s.cfg.Attempts {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		provider := attempt.Client.Provider()
		slog.Info("analyzing with model", "model", attempt.Model, "provider", provider)

		result, err := s.try(ctx, attempt, req)
		if err != nil {
			slog.Warn("model failed", "model", attempt.Model, "provider", provider, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", attempt.Model, err))
			continue
		}

		result.Metadata = model.AnalysisMetadata{
			Model:      attempt.Model,
			Provider:   provider,
			AnalyzedAt: s.now().UTC(),
			WordCount:  text.WordCount,
			HasEmail:   util.HasEmailMarker(text.Text),
			HasPhone:   util.HasPhoneDigits(text.Text),
		}
		slog.Info("AI analysis successful", "model", attempt.Model, "score", result.OverallScore)
		return result, nil
	}

	if len(failures) == 0 {
		return model.AnalysisResult{}, fmt.Errorf("%w: no models configured", errs.ErrAIUnavailable)
	}
	return model.AnalysisResult{}, fmt.Errorf("%w: %w", errs.ErrAIUnavailable, errors.Join(failures...))
}

func (s *AIAnalyzerService) try(ctx context.Context, attempt ModelAttempt, req CompletionRequest) (model.AnalysisResult, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req.Model = attempt.Model
	content, err := attempt.Client.Complete(attemptCtx, req)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return ParseAnalysis(content)
}

// Probe sends a trivial completion to the first model and returns its provider.
func (s *AIAnalyzerService) Probe(ctx context.Context) (string, error) {
	if len(s.cfg.Attempts) == 0 {
		return "", errors.New("no AI models configured")
	}
	attempt := s.cfg.Attempts[0]

	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.HealthTimeout)
	defer cancel()

	_, err := attempt.Client.Complete(probeCtx, CompletionRequest{
		Model:       attempt.Model,
		UserPrompt:  healthPrompt,
		Temperature: s.cfg.Temperature,
		MaxTokens:   10,
	})
	return attempt.Client.Provider(), err
}

// Models lists the configured model names in attempt order.
func (s *AIAnalyzerService) Models() []string {
	names := make([]string, 0, len(s.cfg.Attempts))
	for _, attempt := range s.cfg.Attempts {
		names = append(names, attempt.Model)
	}
	return names
}
