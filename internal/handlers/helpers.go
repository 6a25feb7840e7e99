package handlers

import (
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/normalize"
	"folio/internal/uuid"
)

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListResponse wraps an unpaginated collection.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// respondWithError writes the JSON error envelope. *AppError values keep
// their status, code, message and details; anything else is logged and
// reported as INTERNAL_ERROR.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
	} else {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}

	status, body := apperrors.EnvelopeFor(err)
	c.JSON(status, body)
}

// bindObject decodes a JSON object body into dst.
func bindObject(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation, "Request body must be a JSON object.")
	}
	return nil
}

// unknownFields returns the keys of body not in allowed, sorted.
func unknownFields(body map[string]any, allowed []string) []string {
	var unknown []string
	for key := range body {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// idOrNew returns v unchanged when the caller supplied an id and a fresh
// UUIDv7 otherwise.
func idOrNew(v any) any {
	if normalize.IsAbsent(v) {
		return uuid.New()
	}
	return v
}

// pathID returns the trimmed :id path parameter.
func pathID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
