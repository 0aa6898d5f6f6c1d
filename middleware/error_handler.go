package middleware

import (
	"runtime/debug"
	"strconv"

	"github.com/fra-atlas/fra-atlas-backend/errors"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body produced for every handler error.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"` // HTTP status code as string
}

// ErrorHandler converts errors attached to the gin context into structured
// JSON responses. Handlers report failures via c.Error and return; this
// middleware decides status codes and logging.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Capture stack trace before Next() to preserve the full call stack
		stackTrace := debug.Stack()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		metadata := map[string]interface{}{
			"path":        c.Request.URL.Path,
			"method":      c.Request.Method,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"stack_trace": string(stackTrace),
		}

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			metadata["error_type"] = string(appError.Type)
			metadata["error_message"] = appError.Message
			if appError.Detail != "" {
				metadata["error_detail"] = appError.Detail
			}
			logger.LogError(c, err, appError.Message, metadata)

			c.JSON(statusCode, ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Details: appError.Detail,
				Code:    strconv.Itoa(statusCode),
			})
			return
		}

		// Unknown error types get a sanitized 500.
		log.Errorw("Unhandled error", "error", err, "path", c.Request.URL.Path)
		logger.LogError(c, err, "Unhandled error", metadata)

		c.JSON(500, ErrorResponse{
			Type:    string(errors.ServerError),
			Message: "An internal server error occurred",
			Code:    "500",
		})
	}
}
