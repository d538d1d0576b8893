package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

// ErrorHandler renders the last error attached to the context as the
// standard failure envelope. Server errors are logged with their cause and
// answered with a generic message.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.StatusOf(err)
		fields := logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
		}
		if status >= http.StatusInternalServerError {
			logger.WithError(err).WithFields(fields).Error("request failed")
		} else {
			logger.WithError(err).WithFields(fields).Debug("request rejected")
		}
		if c.Writer.Written() {
			return
		}
		response.Error(c, status, apperror.PublicMessage(err))
	}
}
