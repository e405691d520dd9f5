package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goidm/identity-backend/internal/application"
	"github.com/goidm/identity-backend/pkg/response"
	"github.com/goidm/identity-backend/pkg/translation"
	"github.com/goidm/identity-backend/pkg/validation"
)

// UserHandler exposes registration and account activation over HTTP.
type UserHandler struct {
	Registration *application.RegistrationService
	Activation   *application.ActivationService
	Logger       *logrus.Logger
	Catalog      translation.Catalog
}

func NewUserHandler(reg *application.RegistrationService, act *application.ActivationService, logger *logrus.Logger, catalog translation.Catalog) *UserHandler {
	return &UserHandler{Registration: reg, Activation: act, Logger: logger, Catalog: catalog}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

type activateRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register handles POST /api/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Registration.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondDomainError(c, h.Catalog, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"registered": true}, "user registered successfully")
}

// Activate handles POST /api/activate.
func (h *UserHandler) Activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Activation.Activate(c.Request.Context(), req.Token); err != nil {
		respondDomainError(c, h.Catalog, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"activated": true}, "account activated")
}

// Health handles GET /api/healthz.
func (h *UserHandler) Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
}
