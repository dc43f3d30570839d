package middleware

import (
	"log/slog"
	"net/http"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/handler/httperr"
	"homestay-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler answers for handlers that recorded an error without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError,
			httperr.NewResponse(c, http.StatusInternalServerError, checkout.UnknownFailureMessage, nil))
	}
}

// CustomRecovery turns a panic into the generic checkout failure so the page
// stays usable.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := errs.Newf("panic: %v", r)
				slog.Error("recovered from panic",
					"error", err.Error(),
					"route", routeOf(c),
					"request_id", c.GetString(httperr.RequestIDKey),
					"stack", errs.ExtractStackLines(err, 12),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(c, http.StatusInternalServerError, checkout.UnknownFailureMessage, nil))
			}
		}()
		c.Next()
	}
}
