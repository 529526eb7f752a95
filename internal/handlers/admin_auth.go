package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/audit"
	"towerup-backend/internal/auth"
	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

type AuthHandler struct {
	auth  *auth.Service
	audit *audit.Recorder
}

func NewAuthHandler(authService *auth.Service, rec *audit.Recorder) *AuthHandler {
	return &AuthHandler{auth: authService, audit: rec}
}

// Login godoc
// @Summary     Admin login
// @Description Exchanges admin credentials for a bearer token
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body     models.LoginRequest true "Credentials"
// @Success     200     {object} models.LoginResponse
// @Failure     400     {object} models.ErrorResponse
// @Failure     401     {object} models.ErrorResponse
// @Router      /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid email or password"})
		return
	}
	if err != nil {
		respondError(c, err, "log in", "admin")
		return
	}

	c.Set(middleware.AdminEmailKey, resp.Admin.Email)
	recordAudit(c, h.audit, ActionLogin, "admin", resp.Admin.ID, nil)
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary     Current admin
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AdminProfile
// @Failure     401 {object} models.ErrorResponse
// @Router      /api/v1/admin/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.AdminClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "not authenticated"})
		return
	}
	profile, err := h.auth.Profile(c.Request.Context(), claims)
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "admin account no longer exists"})
		return
	}
	if err != nil {
		respondError(c, err, "load", "admin")
		return
	}
	c.JSON(http.StatusOK, profile)
}
