package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/logger"
	"github.com/MartinBock1/Coderr/internal/services"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

func (h *AuthHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.POST("/registration/", h.Register)
	public.POST("/login/", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegistrationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.Info("user registered", "user_id", resp.UserID, "type", req.Type)
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
