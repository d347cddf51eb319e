package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	authorized.GET("/reviews/", h.List)
	authorized.POST("/reviews/", h.Create)
	authorized.PATCH("/reviews/:id/", h.Update)
	authorized.DELETE("/reviews/:id/", h.Delete)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.Create(userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) List(c *gin.Context) {
	var filter repositories.ReviewFilter
	filter.Ordering = c.Query("ordering")

	if raw := c.Query("business_user_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("business_user_id must be an integer"))
			return
		}
		id := uint(v)
		filter.BusinessUserID = &id
	}
	if raw := c.Query("reviewer_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("reviewer_id must be an integer"))
			return
		}
		id := uint(v)
		filter.ReviewerID = &id
	}

	items, err := h.reviewService.List(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Update binds the body as a raw map so unknown fields fail the request.
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	reviewID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	payload, ok := h.BindJSONMap(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.Update(userID, reviewID, payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	reviewID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(userID, reviewID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
