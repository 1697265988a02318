package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/application"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler handles token issuing.
type AuthHandler struct {
	auth *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *application.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers the auth and health routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth", h.CreateToken)
	r.GET("/ping", h.Ping)
}

// CreateToken handles POST /auth. Only structured bodies are accepted.
// Rejected credentials still answer 200, with a reason instead of a token.
func (h *AuthHandler) CreateToken(c *gin.Context) {
	if c.ContentType() != bookingDomain.MediaJSON {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	token, ok := h.auth.Issue(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"reason": application.BadCredentialsReason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Ping handles GET /ping.
func (h *AuthHandler) Ping(c *gin.Context) {
	c.String(http.StatusCreated, "Created")
}
