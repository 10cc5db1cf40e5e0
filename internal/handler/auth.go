package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/middleware"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/resp"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler instance.
func NewAuthHandler(svc *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}

	result, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	user, err := h.svc.Me(c.Request.Context(), ident.UserID)
	if err != nil {
		// A valid token for a deleted account reads as unauthorized, not
		// as a missing resource.
		if errors.Is(err, repository.ErrNotFound) {
			resp.Fail(c.Writer, resp.UnAuthorized("account no longer exists"))
			return
		}
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, user)
}
