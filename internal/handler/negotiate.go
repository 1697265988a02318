package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// acceptedFormat resolves the Accept header. A missing header or a wildcard
// means structured.
func acceptedFormat(c *gin.Context) (bookingDomain.Format, bool) {
	accept := strings.TrimSpace(c.GetHeader("Accept"))
	if accept == "" {
		return bookingDomain.Structured, true
	}
	for _, part := range strings.Split(accept, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "*/*") {
			return bookingDomain.Structured, true
		}
		if format, ok := bookingDomain.FormatFromMediaType(part); ok {
			return format, true
		}
	}
	return bookingDomain.Structured, false
}

// RequireAcceptable answers 418 when the Accept header names no supported
// representation, as the upstream service does.
func RequireAcceptable() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := acceptedFormat(c); !ok {
			c.String(http.StatusTeapot, "I'm a Teapot")
			c.Abort()
			return
		}
		c.Next()
	}
}

// render writes obj in the representation the client accepts.
func render(c *gin.Context, status int, obj any) {
	if format, _ := acceptedFormat(c); format == bookingDomain.Markup {
		c.XML(status, obj)
		return
	}
	c.JSON(status, obj)
}
