package usecase

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/dto"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/heuristic"
	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/service"
	servicemocks "github.com/fadilmartias/cv-analyzer-pro/internal/service/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const aiReply = `{"overallScore":81,"summary":"Strong","strengths":["Clear"],"weaknesses":["No links"],
"sectionsAnalysis":{},"skillsAnalysis":{},"atsOptimization":{"score":70,"recommendedKeywords":[]},
"recommendations":["Add links"],"suggestedJobTitles":["Engineer"]}`

type extractorFunc func(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error)

func (f extractorFunc) Extract(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
	return f(ctx, doc)
}

type AnalysisUsecaseSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	client    *servicemocks.MockCompletionServiceInterface
	uploadDir string
	text      string
	extractor extractorFunc
	uc        *AnalysisUsecase
}

func TestAnalysisUsecaseSuite(t *testing.T) {
	suite.Run(t, new(AnalysisUsecaseSuite))
}

func (s *AnalysisUsecaseSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = servicemocks.NewMockCompletionServiceInterface(s.ctrl)
	s.client.EXPECT().Provider().Return("Groq AI").AnyTimes()
	s.uploadDir = s.T().TempDir()
	s.text = strings.Repeat("Backend engineer with payments experience. ", 40)
	s.extractor = func(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
		s.FileExists(doc.Path)
		return model.NewExtractedText(s.text, model.SourcePlainText), nil
	}

	intake := service.NewIntakeService(&config.ExtractionConfig{UploadDir: s.uploadDir, MaxUploadBytes: 10 * 1024 * 1024})
	ai := service.NewAIAnalyzerService(service.AIAnalyzerConfig{
		Attempts: []service.ModelAttempt{
			{Model: "m1", Client: s.client},
			{Model: "m2", Client: s.client},
		},
		Timeout:       time.Second,
		HealthTimeout: time.Second,
		InputChars:    3500,
	})
	s.uc = NewAnalysisUsecase(intake, extractorFunc(func(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
		return s.extractor(ctx, doc)
	}), ai, &config.AnalysisConfig{MinTextChars: 100, PreviewChars: 1000, AIInputChars: 3500})
}

func (s *AnalysisUsecaseSuite) TearDownTest() {
	entries, err := os.ReadDir(s.uploadDir)
	s.Require().NoError(err)
	s.Empty(entries, "uploads must be removed")
	s.ctrl.Finish()
}

func (s *AnalysisUsecaseSuite) upload(name string) *multipart.FileHeader {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("cv", name)
	s.Require().NoError(err)
	_, err = part.Write([]byte("placeholder content"))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = form.RemoveAll() })
	return form.File["cv"][0]
}

func (s *AnalysisUsecaseSuite) TestAIPowered() {
	s.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(aiReply, nil).Times(1)

	resp, err := s.uc.Analyze(context.Background(), "req-1", s.upload("cv.txt"))
	s.Require().NoError(err)

	s.True(resp.Success)
	s.Equal("cv.txt", resp.FileName)
	s.Equal(".txt", resp.FileType)
	s.Equal(dto.AnalysisTypeAI, resp.AnalysisType)
	s.Equal(81, resp.AIAnalysis.OverallScore)
	s.Equal(model.GradeA, resp.AIAnalysis.Grade)
	s.Equal("m1", resp.AIAnalysis.Metadata.Model)
	s.True(strings.HasSuffix(resp.TextPreview, "..."))
	s.Len([]rune(resp.TextPreview), 1003)
	s.Equal("plain-text", resp.BasicMetrics.ExtractionMethod)
	s.True(resp.BasicMetrics.ExtractedSuccessfully)
}

func (s *AnalysisUsecaseSuite) TestAllModelsFail() {
	s.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("invalid api key")).Times(2)

	resp, err := s.uc.Analyze(context.Background(), "req-2", s.upload("cv.txt"))
	s.Require().NoError(err)

	s.Equal(dto.AnalysisTypeRuleBased, resp.AnalysisType)
	s.Equal(heuristic.EngineName, resp.AIAnalysis.Metadata.Model)
	s.NoError(resp.AIAnalysis.Validate())
}

func (s *AnalysisUsecaseSuite) TestShortPreviewIsNotEllipsized() {
	s.text = strings.Repeat("Short but sufficient text. ", 5)
	s.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(aiReply, nil)

	resp, err := s.uc.Analyze(context.Background(), "req-3", s.upload("cv.txt"))
	s.Require().NoError(err)
	s.Equal(s.text, resp.TextPreview)
}

func (s *AnalysisUsecaseSuite) TestInsufficientText() {
	s.text = "Jane Doe"

	resp, err := s.uc.Analyze(context.Background(), "req-4", s.upload("cv.txt"))
	s.Nil(resp)
	s.ErrorIs(err, errs.ErrInsufficientText)

	var lengthErr *errs.TextLengthError
	s.Require().True(errors.As(err, &lengthErr))
	s.Equal(8, lengthErr.Length)
}

func (s *AnalysisUsecaseSuite) TestExtractionFailed() {
	s.extractor = func(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
		return model.ExtractedText{}, errs.ErrExtractionFailed
	}

	_, err := s.uc.Analyze(context.Background(), "req-5", s.upload("cv.png"))
	s.ErrorIs(err, errs.ErrExtractionFailed)
}

func (s *AnalysisUsecaseSuite) TestPanicBecomesUnexpected() {
	s.extractor = func(ctx context.Context, doc *model.UploadedDocument) (model.ExtractedText, error) {
		panic("decoder blew up")
	}

	resp, err := s.uc.Analyze(context.Background(), "req-6", s.upload("cv.pdf"))
	s.Nil(resp)
	s.ErrorIs(err, errs.ErrUnexpected)
	s.Contains(err.Error(), "decoder blew up")
}

func (s *AnalysisUsecaseSuite) TestRejectedUpload() {
	_, err := s.uc.Analyze(context.Background(), "req-7", s.upload("cv.exe"))
	s.ErrorIs(err, errs.ErrInvalidFileType)

	_, err = s.uc.Analyze(context.Background(), "req-8", nil)
	s.ErrorIs(err, errs.ErrNoFile)
}

func (s *AnalysisUsecaseSuite) TestHealth() {
	s.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("operational", nil)
	health := s.uc.Health(context.Background())
	s.Equal(dto.HealthOperational, health.Status)
	s.Equal("m1", health.Model)
	s.Equal([]string{"m1", "m2"}, health.SupportedModels)
	s.NotEmpty(health.Fallback)
	s.Empty(health.Error)

	s.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))
	health = s.uc.Health(context.Background())
	s.Equal(dto.HealthDegraded, health.Status)
	s.Contains(health.Error, "connection refused")
	s.NotEmpty(health.Suggestion)
	s.NotEmpty(health.Fallback)
}

func (s *AnalysisUsecaseSuite) TestCheckUpload() {
	resp, err := s.uc.CheckUpload(s.upload("cv.pdf"))
	s.Require().NoError(err)
	s.True(resp.FileReceived)
	s.Equal("cv.pdf", resp.FileName)
	s.Equal(int64(len("placeholder content")), resp.Size)
}
