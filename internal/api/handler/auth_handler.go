package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/user"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a user and returns a bearer token
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var duplicate user.ErrDuplicateUsername
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Username is already taken")
			return
		}
		if errors.Is(err, user.ErrEmptyUsername) || errors.Is(err, user.ErrEmptyPassword) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to register user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, TokenResponse{Token: token})
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid username or password")
			return
		}
		h.logger.Error("Failed to log in user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, TokenResponse{Token: token})
}
