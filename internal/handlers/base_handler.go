package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/utils"
	"github.com/SAP-F-2025/authuser-service/internal/validator"
)

// ErrorResponse is the JSON body returned on request failures
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse is the JSON body for plain confirmation messages
type MessageResponse struct {
	Message string `json:"message"`
}

// BaseHandler carries the pieces shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request at debug level. The request-scoped
// logger from the context already carries the request id.
func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).
		Debug(msg, append([]any{"path", c.FullPath()}, args...)...)
}

// LogError logs a handler-level failure
func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).
		Error(msg, append([]any{"path", c.FullPath(), "error", err}, args...)...)
}

// handleServiceError translates service errors into HTTP responses.
// NotFound and the two uniqueness conflicts map to their status codes;
// validation failures carry field details; anything else is a 500.
func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "ERROR: User name already exists",
		})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "ERROR: Email already exists",
		})
	case errors.Is(err, services.ErrPasswordMismatch):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "ERROR: Mismatched old password",
		})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
