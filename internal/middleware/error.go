package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers panics into a JSON 500 and turns bare error
// statuses left by handlers into a JSON error body.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"panic": err,
					"path":  c.Request.URL.Path,
				}).Error("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if c.Writer.Written() || c.Writer.Status() < http.StatusBadRequest {
			return
		}
		msg := http.StatusText(c.Writer.Status())
		if last := c.Errors.Last(); last != nil {
			msg = last.Error()
		}
		c.JSON(c.Writer.Status(), ErrorResponse{Error: msg})
	}
}
