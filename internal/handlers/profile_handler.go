package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/services"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	authorized.GET("/profile/:pk/", h.Get)
	authorized.PATCH("/profile/:pk/", h.Update)
	authorized.GET("/profiles/business/", h.ListBusiness)
	authorized.GET("/profiles/customer/", h.ListCustomer)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "pk")
	if !ok {
		return
	}

	resp, err := h.profileService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	requesterID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	targetUserID, ok := h.ParseIDParam(c, "pk")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateProfile(requesterID, targetUserID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) ListBusiness(c *gin.Context) {
	h.listByType(c, models.UserTypeBusiness)
}

func (h *ProfileHandler) ListCustomer(c *gin.Context) {
	h.listByType(c, models.UserTypeCustomer)
}

func (h *ProfileHandler) listByType(c *gin.Context, userType models.UserType) {
	items, err := h.profileService.ListByType(userType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
