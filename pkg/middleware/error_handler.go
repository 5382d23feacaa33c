package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/logger"
)

// ErrorHandler is the terminal error middleware: any error attached to the
// context via c.Error is serialized into a uniform JSON body
// {"error":{"message":...,"status":...}} with the status taken from the
// error's hint (default 500). Validation errors additionally carry the
// per-field details. Underlying error causes are echoed to the client only
// outside production.
func ErrorHandler(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.StatusOf(err)

		logger.Errorf("request failed: %s %s status=%d err=%v ts=%s",
			c.Request.Method, c.Request.URL.Path, status, err, time.Now().UTC().Format(time.RFC3339))

		body := gin.H{"message": messageOf(err), "status": status}
		var ae *apperr.Error
		if errors.As(err, &ae) {
			if len(ae.Fields) > 0 {
				body["details"] = ae.Fields
			}
			if ae.Err != nil && environment != "production" {
				body["cause"] = ae.Err.Error()
			}
		}
		c.JSON(status, gin.H{"error": body})
	}
}

func messageOf(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if apperr.StatusOf(err) == http.StatusInternalServerError {
		// never leak raw internals for untyped errors
		return "Internal Server Error"
	}
	return err.Error()
}
