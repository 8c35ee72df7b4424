package auth

import (
	"net/http"

	"ofertare-gateway/internal/guard"
	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/pkg/xerrors"
	service "ofertare-gateway/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials with the backend and establishes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	state, err := h.authService.Login(c.Request.Context(), c.Writer, c.Request, req.Email, req.Password)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrUnauthorized) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.Error(c, http.StatusBadGateway, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged in", gin.H{
		"profile":    state.Profile,
		"redirectTo": c.Query(guard.RedirectToParam),
	})
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.Writer, c.Request); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me reports the current identity and the access token's expiry.
func (h *AuthHandler) Me(c *gin.Context) {
	state := guard.SessionFromContext(c)
	if !state.FullyAuthenticated() {
		response.Unauthorized(c, "not fully authenticated")
		return
	}

	data := gin.H{"profile": state.Profile}
	if exp, ok := state.Token.Expiry(); ok {
		data["token_expires_at"] = exp
	}
	response.Success(c, http.StatusOK, "authenticated", data)
}
