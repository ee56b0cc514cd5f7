package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string       `json:"status"`
	Code    int          `json:"code"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUpstreamError = "UPSTREAM_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
)

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Error:   errCode,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondValidationError(c *gin.Context, verr *ValidationError) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Error:   CodeInvalidInput,
		Message: "Request validation failed",
		TraceID: c.GetString("trace_id"),
		Details: verr.Fields,
	})
}

// HandleServiceError maps service errors onto the error envelope.
func HandleServiceError(c *gin.Context, log *slog.Logger, op string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		RespondValidationError(c, verr)
	case errors.Is(err, ErrUpstream):
		log.Error("upstream call failed",
			"op", op,
			"trace_id", c.GetString("trace_id"),
			"error", err.Error())
		RespondError(c, http.StatusBadGateway, CodeUpstreamError, err.Error())
	default:
		log.Error("unexpected error",
			"op", op,
			"trace_id", c.GetString("trace_id"),
			"error", err.Error())
		RespondError(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}
