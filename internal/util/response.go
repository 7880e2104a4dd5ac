package util

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code    int
	Message string
	Data    any
	Meta    any
}

type OrderedSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Meta    any    `json:"meta,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code            int
	Message         string
	Suggestion      string
	Details         any
	ExtractedLength *int
	DevMessage      string
	// Production hides dev_message and trace.
	Production bool
}

type OrderedErrorResponse struct {
	Success         bool   `json:"success"`
	Error           string `json:"error"`
	Details         any    `json:"details,omitempty"`
	Suggestion      string `json:"suggestion,omitempty"`
	ExtractedLength *int   `json:"extractedLength,omitempty"`
	DevMessage      string `json:"dev_message,omitempty"`
	Trace           string `json:"trace,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	response := OrderedSuccessResponse{
		Success: true,
		Message: params.Message,
		Data:    params.Data,
		Meta:    params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse sends the standard error envelope. Unless params.Production is set the
// underlying error is echoed as dev_message, and server errors carry a stack trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	errorCode := params.Code
	if errorCode == 0 {
		errorCode = fiber.StatusInternalServerError
	}

	response := OrderedErrorResponse{
		Success:         false,
		Error:           params.Message,
		Details:         params.Details,
		Suggestion:      params.Suggestion,
		ExtractedLength: params.ExtractedLength,
	}
	if !params.Production {
		if len(errs) > 0 && errs[0] != nil {
			response.DevMessage = errs[0].Error()
		}
		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if errorCode >= fiber.StatusInternalServerError {
			response.Trace = string(debug.Stack())
		}
	}

	return c.Status(errorCode).JSON(response)
}
