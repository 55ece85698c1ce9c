package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success   bool                           `json:"success"`
	Message   string                         `json:"message"`
	Error     string                         `json:"error"`
	Errors    []serviceerrors.FieldViolation `json:"errors,omitempty"`
	Timestamp string                         `json:"timestamp"`
}

var production bool

// SetProductionMode controls whether internal error details leak into
// responses. In production a 500 carries only a generic message.
func SetProductionMode(enabled bool) {
	production = enabled
}

func respond(c *gin.Context, status int, message, detail string, violations []serviceerrors.FieldViolation) {
	c.JSON(status, ErrorResponse{
		Success:   false,
		Message:   message,
		Error:     detail,
		Errors:    violations,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleError logs the failure once and shapes the response. Logging happens
// here and nowhere else on the request path, independent of runtime mode.
func HandleError(c *gin.Context, err error) {
	fields := map[string]any{
		"http.method": c.Request.Method,
		"http.url":    c.Request.URL.String(),
	}

	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) && svcErr.Kind != serviceerrors.KindRepository {
		logger.Warn(c.Request.Context(), "request failed: "+svcErr.Message, fields)
		status := mapKindToHTTP(svcErr.Kind)
		respond(c, status, svcErr.Message, http.StatusText(status), svcErr.Violations)
		return
	}

	logger.Error(c.Request.Context(), "request failed", err, fields)

	detail := err.Error()
	if production {
		detail = ""
	}
	respond(c, http.StatusInternalServerError, "Internal Server Error", detail, nil)
}

// NotFoundFallback answers every unrouted path with the same shaped body as
// the error handler.
func NotFoundFallback(c *gin.Context) {
	message := fmt.Sprintf("Route %s not found", c.Request.URL.Path)
	respond(c, http.StatusNotFound, message, http.StatusText(http.StatusNotFound), nil)
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindValidation, serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindInvalidOperation:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidToken, serviceerrors.KindTokenExpired:
		return http.StatusUnauthorized
	case serviceerrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
