package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/middleware"
	"github.com/MartinBock1/Coderr/internal/services"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

type OrderHandler struct {
	*BaseHandler
	orderService *services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{BaseHandler: base, orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	authorized.GET("/orders/", h.List)
	authorized.POST("/orders/", h.Create)
	authorized.GET("/orders/:id/", h.Get)
	authorized.PATCH("/orders/:id/", h.UpdateStatus)
	authorized.DELETE("/orders/:id/", h.Delete)
	authorized.GET("/order-count/:business_user_id/", h.CountInProgress)
	authorized.GET("/completed-order-count/:business_user_id/", h.CountCompleted)
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.orderService.Create(userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	items, err := h.orderService.List(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.Retrieve(userID, middleware.GetIsStaff(c), orderID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus binds the body as a raw map so that fields beyond status can
// be rejected instead of silently dropped.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	payload, ok := h.BindJSONMap(c)
	if !ok {
		return
	}

	resp, err := h.orderService.UpdateStatus(userID, orderID, payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if _, ok := h.GetAuthUserID(c); !ok {
		return
	}
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(middleware.GetIsStaff(c), orderID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) CountInProgress(c *gin.Context) {
	businessUserID, ok := h.ParseIDParam(c, "business_user_id")
	if !ok {
		return
	}

	resp, err := h.orderService.CountInProgress(businessUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) CountCompleted(c *gin.Context) {
	businessUserID, ok := h.ParseIDParam(c, "business_user_id")
	if !ok {
		return
	}

	resp, err := h.orderService.CountCompleted(businessUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
