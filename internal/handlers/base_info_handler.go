package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/services"
)

type BaseInfoHandler struct {
	*BaseHandler
	statsService *services.StatsService
}

func NewBaseInfoHandler(base *BaseHandler, statsService *services.StatsService) *BaseInfoHandler {
	return &BaseInfoHandler{BaseHandler: base, statsService: statsService}
}

// RegisterRoutes wires the public stats endpoint.
func (h *BaseInfoHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/base-info/", h.Get)
}

func (h *BaseInfoHandler) Get(c *gin.Context) {
	resp, err := h.statsService.GetBaseInfo()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
