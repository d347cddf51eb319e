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

type OfferHandler struct {
	*BaseHandler
	offerService *services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{BaseHandler: base, offerService: offerService}
}

// RegisterRoutes wires the offer endpoints. Browsing the list is public;
// everything else requires authentication.
func (h *OfferHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/offers/", h.List)
	authorized.POST("/offers/", h.Create)
	authorized.GET("/offers/:id/", h.Get)
	authorized.PATCH("/offers/:id/", h.Update)
	authorized.DELETE("/offers/:id/", h.Delete)
	authorized.GET("/offerdetails/:id/", h.GetDetail)
}

func (h *OfferHandler) Create(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.offerService.Create(userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OfferHandler) List(c *gin.Context) {
	filter, ok := h.parseOfferFilter(c)
	if !ok {
		return
	}

	items, total, err := h.offerService.List(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp := dto.PaginatedOffers{
		Count:   total,
		Results: items,
	}
	if int64(filter.Page*filter.PageSize) < total {
		resp.Next = pageURL(c, filter.Page+1)
	}
	if filter.Page > 1 {
		resp.Previous = pageURL(c, filter.Page-1)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *OfferHandler) Get(c *gin.Context) {
	offerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.offerService.Get(offerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfferHandler) Update(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	offerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.offerService.Update(userID, offerID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfferHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAuthUserID(c)
	if !ok {
		return
	}
	offerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.offerService.Delete(userID, offerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfferHandler) GetDetail(c *gin.Context) {
	detailID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.offerService.GetDetail(detailID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseOfferFilter reads the list query parameters. Unparseable numeric
// filters are a client error, not a silent no-op.
func (h *OfferHandler) parseOfferFilter(c *gin.Context) (repositories.OfferFilter, bool) {
	var filter repositories.OfferFilter
	filter.Page, filter.PageSize = h.ParsePagination(c)
	filter.Search = c.Query("search")
	filter.Ordering = c.Query("ordering")

	if raw := c.Query("creator_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("creator_id must be an integer"))
			return filter, false
		}
		id := uint(v)
		filter.CreatorID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("min_price must be a number"))
			return filter, false
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_delivery_time"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("max_delivery_time must be an integer"))
			return filter, false
		}
		filter.MaxDeliveryTime = &v
	}

	return filter, true
}

// pageURL rebuilds the current request URL with a different page number.
func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
