package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-manager/backend/internal/apperror"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"-"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{Status: status, Message: message, Timestamp: time.Now()}
}

// ErrorHandler renders the last error attached with c.Error as a JSON error
// body and turns panics into a 500. Handlers that already wrote a response
// are left alone.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					NewErrorResponse(http.StatusInternalServerError, apperror.MsgInternal))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "error", err, "request_id", c.GetString(RequestIDKey))
		}
		c.JSON(status, NewErrorResponse(status, apperror.PublicMessage(err)))
	}
}
