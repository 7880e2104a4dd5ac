package handler

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
	"github.com/fadilmartias/cv-analyzer-pro/internal/middleware"
	"github.com/fadilmartias/cv-analyzer-pro/internal/usecase"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
	"github.com/gofiber/fiber/v2"
)

const formField = "cv"

type CVAnalyzerHandler struct {
	uc  *usecase.AnalysisUsecase
	cfg *config.AppConfig
}

func NewCVAnalyzerHandler(uc *usecase.AnalysisUsecase, cfg *config.AppConfig) *CVAnalyzerHandler {
	return &CVAnalyzerHandler{uc: uc, cfg: cfg}
}

func (h *CVAnalyzerHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/api/v1/cv-analyzer")
	group.Post("/analyze", middleware.RateLimiter(h.cfg.AnalyzeRateLimitMax, h.cfg.RateLimitWindow, h.cfg.IsProduction()), h.Analyze)
	group.Get("/health", h.Health)
	group.Post("/test", h.Test)
}

func (h *CVAnalyzerHandler) Analyze(c *fiber.Ctx) error {
	resp, err := h.uc.Analyze(c.UserContext(), requestID(c), formFile(c))
	if err != nil {
		return fail(c, err, h.cfg.IsProduction())
	}
	return c.JSON(resp)
}

func (h *CVAnalyzerHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health(c.UserContext()))
}

func (h *CVAnalyzerHandler) Test(c *fiber.Ctx) error {
	resp, err := h.uc.CheckUpload(formFile(c))
	if err != nil {
		return fail(c, err, h.cfg.IsProduction())
	}
	return c.JSON(resp)
}

// formFile returns nil when the request carries no usable cv field.
func formFile(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile(formField)
	if err != nil {
		return nil
	}
	return file
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// fail renders err with the status, message and suggestion of its error kind.
func fail(c *fiber.Ctx, err error, production bool) error {
	code := errs.CodeOf(err)
	params := util.ErrorResponseFormat{
		Code:       code.Status,
		Message:    code.Msg,
		Suggestion: code.Suggestion,
		Production: production,
	}
	var lengthErr *errs.TextLengthError
	if errors.As(err, &lengthErr) {
		n := lengthErr.Length
		params.ExtractedLength = &n
	}
	if code.Status >= fiber.StatusInternalServerError {
		params.Details = err.Error()
	}
	return util.ErrorResponse(c, params, err)
}

// NewErrorHandler returns the app-wide fiber error handler. Oversized bodies rejected by
// the server become FileTooLarge; routing errors keep their status; anything else is a 500.
func NewErrorHandler(cfg *config.AppConfig) fiber.ErrorHandler {
	production := cfg.IsProduction()
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch {
			case fe.Code == fiber.StatusRequestEntityTooLarge:
				return fail(c, fmt.Errorf("%w: %s", errs.ErrFileTooLarge, fe.Message), production)
			case fe.Code < fiber.StatusInternalServerError:
				return util.ErrorResponse(c, util.ErrorResponseFormat{
					Code:       fe.Code,
					Message:    fe.Message,
					Production: production,
				})
			}
		}
		return fail(c, fmt.Errorf("%w: %v", errs.ErrUnexpected, err), production)
	}
}
