package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/pkg/apperror"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

// ErrorMiddleware turns errors collected during a request into the two
// wire shapes: {"errors":[{msg,field?}]} for validation failures and
// {"msg": ...} for everything else. Internal detail never leaks; a 500 is
// always the generic "Server error".
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var ve *apperror.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Errors})
			return
		}

		var ae *apperror.AppError
		if errors.As(err, &ae) {
			status := apperror.ToHTTPStatus(ae)
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", ae, zap.String("path", c.Request.URL.Path))
				c.JSON(status, gin.H{"msg": "Server error"})
				return
			}
			c.JSON(status, gin.H{"msg": ae.Message})
			return
		}

		log.Error("Unhandled request error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
	}
}
