package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/config"
	"github.com/MartinBock1/Coderr/internal/database"
	"github.com/MartinBock1/Coderr/internal/handlers"
	"github.com/MartinBock1/Coderr/internal/logger"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/routes"
	"github.com/MartinBock1/Coderr/internal/services"
	"github.com/MartinBock1/Coderr/internal/storage"
)

type appServices struct {
	auth    *services.AuthService
	profile *services.ProfileService
	offer   *services.OfferService
	order   *services.OrderService
	review  *services.ReviewService
	stats   *services.StatsService
}

// Run wires the whole application and starts the HTTP server.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	router, err := SetupRouter(db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with all routes attached. Tests use it
// directly against their own database handle.
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
	cfg := config.GetConfig()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	svcs := initializeServices(db)

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	appHandlers := initializeHandlers(svcs, store)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, appHandlers)

	return router, nil
}

func initializeServices(db *gorm.DB) *appServices {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	offerRepo := repositories.NewOfferRepository()
	orderRepo := repositories.NewOrderRepository()
	reviewRepo := repositories.NewReviewRepository()

	return &appServices{
		auth:    services.NewAuthService(db, userRepo, profileRepo),
		profile: services.NewProfileService(db, userRepo, profileRepo),
		offer:   services.NewOfferService(db, offerRepo, userRepo, profileRepo),
		order:   services.NewOrderService(db, orderRepo, offerRepo, profileRepo),
		review:  services.NewReviewService(db, reviewRepo, profileRepo),
		stats:   services.NewStatsService(db, reviewRepo, profileRepo, offerRepo),
	}
}

func initializeHandlers(svcs *appServices, store storage.Storage) *handlers.AppHandlers {
	base := handlers.NewBaseHandler()

	return &handlers.AppHandlers{
		Auth:     handlers.NewAuthHandler(base, svcs.auth),
		Profile:  handlers.NewProfileHandler(base, svcs.profile),
		Offer:    handlers.NewOfferHandler(base, svcs.offer),
		Order:    handlers.NewOrderHandler(base, svcs.order),
		Review:   handlers.NewReviewHandler(base, svcs.review),
		BaseInfo: handlers.NewBaseInfoHandler(base, svcs.stats),
		File:     handlers.NewFileHandler(base, store),
	}
}
