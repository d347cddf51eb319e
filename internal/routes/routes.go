package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MartinBock1/Coderr/internal/config"
	"github.com/MartinBock1/Coderr/internal/handlers"
	"github.com/MartinBock1/Coderr/internal/middleware"
)

// SetupRoutes mounts every endpoint under /api. Registration, login, the
// offer list and the platform stats are public; the rest needs a token.
func SetupRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware())

	h.Auth.RegisterRoutes(api, authorized)
	h.Profile.RegisterRoutes(api, authorized)
	h.Offer.RegisterRoutes(api, authorized)
	h.Order.RegisterRoutes(api, authorized)
	h.Review.RegisterRoutes(api, authorized)
	h.BaseInfo.RegisterRoutes(api, authorized)
	h.File.RegisterRoutes(api, authorized)

	// Uploaded files are served straight from disk.
	cfg := config.GetConfig()
	router.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
}
