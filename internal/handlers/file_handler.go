package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/config"
	"github.com/MartinBock1/Coderr/internal/storage"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

// FileHandler accepts profile and offer image uploads and hands them to the
// configured storage backend.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{BaseHandler: base, storage: store}
}

func (h *FileHandler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	authorized.POST("/uploads/", h.Upload)
}

func (h *FileHandler) Upload(c *gin.Context) {
	if _, ok := h.GetAuthUserID(c); !ok {
		return
	}

	cfg := config.GetConfig()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file is required under the 'file' form field"))
		return
	}
	if fileHeader.Size > cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File exceeds the maximum upload size"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedType(contentType, cfg.Upload.AllowedTypes) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported file type"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	url, err := h.storage.Save(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": url})
}

func allowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}
