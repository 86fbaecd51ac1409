package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/logger"
)

// ErrorHandler translates errors attached to the gin context into JSON
// responses. Handlers call c.Error and abort; nothing writes error bodies
// directly.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			log.Warnw("Request failed",
				"type", appError.Type,
				"message", appError.Message,
				"status", statusCode,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"requestId", c.GetString(RequestIDKey),
			)

			response := gin.H{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding failed",
				"error", err,
				"path", c.Request.URL.Path,
			)

			response := gin.H{
				"type":    string(errors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}

			c.JSON(http.StatusBadRequest, response)
			return
		}

		log.Errorw("Unexpected server error",
			"error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"requestId", c.GetString(RequestIDKey),
		)

		response := gin.H{
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}

		c.JSON(http.StatusInternalServerError, response)
	}
}
