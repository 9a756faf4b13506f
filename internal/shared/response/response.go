// Package response standardizes the JSON envelope and the mapping from the
// error taxonomy to HTTP status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/apperror"
)

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ListResponse wraps an ordered result set together with its item count.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList builds a ListResponse; a nil slice serializes as an empty list.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// SearchRequest is the body of every search endpoint: the sparse filter
// object sits under "query".
type SearchRequest[T any] struct {
	Query T `json:"query"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   &Error{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   &Error{Code: code, Message: message, Details: details},
	})
}

// BadRequest reports a request whose shape failed binding or DTO validation.
// The message is fixed; the rule that failed travels in details.
func BadRequest(c *gin.Context, details any) {
	ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Method argument validation failed", details)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

// HandleError translates a taxonomy error into its HTTP response. Unknown
// errors are logged and reported as 500 without leaking internals.
func HandleError(c *gin.Context, err error) {
	var (
		validationErr    *apperror.ValidationError
		notFoundErr      *apperror.NotFoundError
		conflictErr      *apperror.ConflictError
		authorizationErr *apperror.AuthorizationError
	)
	switch {
	case errors.As(err, &validationErr):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Message)
	case errors.As(err, &notFoundErr):
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error())
	case errors.As(err, &conflictErr):
		ErrorResponse(c, http.StatusConflict, "CONFLICT", conflictErr.Message)
	case errors.As(err, &authorizationErr):
		ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", authorizationErr.Message)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		ErrorResponse(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
