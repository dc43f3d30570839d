package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"homestay-checkout/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxInboundRequestID = 64
)

// RequestLog tags every request with an id and logs it on the way in and out.
// Only the route template is logged; query strings can carry provider tokens.
func RequestLog(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxInboundRequestID {
			requestID = l.newRequestID()
		}
		c.Set(httperr.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("route", routeOf(c)),
			slog.String("client_ip", c.ClientIP()),
		}
		if sessionID := checkoutSessionID(c); sessionID != "" {
			attrs = append(attrs, slog.String("session_id", sessionID))
		}
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "request started", attrs...)

		c.Next()

		status := c.Writer.Status()
		attrs = append(attrs,
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		l.logger.LogAttrs(context.Background(), levelFor(status), "request completed", attrs...)
	}
}

// Field errors (422) and declined payments (402) are ordinary checkout flow.
func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusConflict, status == http.StatusTooManyRequests:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// checkoutSessionID reads the session from the route, or from the query on
// provider return URLs.
func checkoutSessionID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("session")
}

func (l *Logger) newRequestID() string {
	stamp := time.Now().In(l.timezone).Format("20060102150405")
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return stamp + "-" + strconv.FormatInt(time.Now().UnixNano()%1e8, 10)
	}
	return stamp + "-" + hex.EncodeToString(suffix)
}
