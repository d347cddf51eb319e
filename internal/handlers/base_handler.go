package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/logger"
	"github.com/MartinBock1/Coderr/internal/middleware"
	"github.com/MartinBock1/Coderr/internal/validator"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BaseHandler bundles the helpers every endpoint handler needs.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{validator: validator.New()}
}

// BindAndValidateJSON binds the body into obj and runs struct validation.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// BindJSONMap binds the body into a raw map. Partial updates that must
// reject unknown fields go through here instead of a typed struct.
func (h *BaseHandler) BindJSONMap(c *gin.Context) (map[string]interface{}, bool) {
	payload := map[string]interface{}{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return nil, false
	}
	return payload, true
}

// HandleServiceError writes a service error to the response. Server-side
// failures get logged with their request context before they leave.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "request failed", err)
	}
	apperrors.HandleError(c, err)
}

// GetAuthUserID reads the authenticated user id. A missing principal means
// the route was wired without AuthMiddleware.
func (h *BaseHandler) GetAuthUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return 0, false
	}
	return userID, true
}

// ParseIDParam parses a positive integer path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid id parameter"))
		return 0, false
	}
	return uint(id), true
}

// ParsePagination reads page and page_size query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}
	return page, pageSize
}
