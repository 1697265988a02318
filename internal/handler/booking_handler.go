package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/application"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
	auth    *application.AuthService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService, auth *application.AuthService) *BookingHandler {
	return &BookingHandler{service: service, auth: auth}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/booking")
	bookings.Use(RequireAcceptable())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.RequireToken(), h.UpdateBooking)
	}
}

// CreateBooking handles POST /booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	payload, ok := bindBooking(c)
	if !ok {
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err)
		return
	}

	render(c, http.StatusOK, result)
}

// ListBookings handles GET /booking. The listing is always structured.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter bookingDomain.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBooking handles GET /booking/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	render(c, http.StatusOK, result)
}

// UpdateBooking handles PUT /booking/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	payload, ok := bindBooking(c)
	if !ok {
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), id, payload)
	if err != nil {
		writeError(c, err)
		return
	}

	render(c, http.StatusOK, result)
}

// RequireToken rejects requests without the token cookie or the account's
// basic credentials with 403.
func (h *BookingHandler) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie("token"); err == nil && h.auth.Valid(token) {
			c.Next()
			return
		}
		if user, pass, ok := c.Request.BasicAuth(); ok && h.auth.Matches(user, pass) {
			c.Next()
			return
		}
		c.String(http.StatusForbidden, "Forbidden")
		c.Abort()
	}
}

// bindBooking decodes the body in the format its Content-Type declares.
// Undecodable bodies answer 400, bodies missing a required field answer 500.
func bindBooking(c *gin.Context) (application.BookingPayload, bool) {
	var payload application.BookingPayload

	format, ok := bookingDomain.FormatFromMediaType(c.ContentType())
	if !ok {
		c.String(http.StatusBadRequest, "Bad Request")
		return payload, false
	}

	var err error
	if format == bookingDomain.Markup {
		err = c.ShouldBindXML(&payload)
	} else {
		err = c.ShouldBindJSON(&payload)
	}
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.String(http.StatusInternalServerError, "Internal Server Error")
		} else {
			c.String(http.StatusBadRequest, "Bad Request")
		}
		return payload, false
	}
	return payload, true
}

// parseBookingID extracts the :id path parameter, answering 400 when it is
// not an integer.
func parseBookingID(c *gin.Context) (bookingDomain.BookingID, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return 0, false
	}
	return bookingDomain.BookingID(id), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingDomain.ErrNotFound):
		c.String(http.StatusNotFound, "Not Found")
	case errors.Is(err, application.ErrIncompleteBooking):
		c.String(http.StatusInternalServerError, "Internal Server Error")
	default:
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}
