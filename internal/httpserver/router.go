package httpserver

import (
	"context"
	"io"
	"log"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	"storefront/internal/seed"
)

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type contentService interface {
	Slides(ctx context.Context) ([]domain.Slide, error)
	CreateSlide(ctx context.Context, s domain.Slide) (*domain.Slide, error)
	Banners(ctx context.Context) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error)
}

type userService interface {
	List(ctx context.Context) ([]domain.User, error)
	Register(ctx context.Context, u domain.User) (*domain.User, error)
}

type reviewService interface {
	List(ctx context.Context, productID string) ([]domain.Review, error)
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type orderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type settingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Current(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}

type seeder interface {
	Seed(ctx context.Context, d domain.Dataset) (seed.Counts, error)
}

// Deps groups the services behind the routes. Ping reports database health.
type Deps struct {
	Products   productService
	Categories categoryService
	Content    contentService
	Users      userService
	Reviews    reviewService
	Orders     orderService
	Settings   settingsService
	Seeder     seeder
	Ping       func(ctx context.Context) error
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps, corsOrigins []string) *gin.Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), corsMiddleware(corsOrigins))

	h := handlers{deps: deps, logger: logger}

	router.GET("/health", healthHandler(deps.Ping))

	router.GET("/products", h.listProducts)
	router.POST("/products", h.createProduct)
	router.DELETE("/products/:id", h.deleteProduct)

	router.GET("/categories", h.listCategories)
	router.POST("/categories", h.createCategory)

	router.GET("/slides", h.listSlides)
	router.POST("/slides", h.createSlide)
	router.GET("/banners", h.listBanners)
	router.POST("/banners", h.createBanner)

	router.GET("/users", h.listUsers)
	router.POST("/users", h.createUser)

	router.GET("/reviews", h.listReviews)
	router.POST("/reviews", h.createReview)
	router.DELETE("/reviews/:id", h.deleteReview)

	router.GET("/orders", h.listOrders)
	router.POST("/orders", h.createOrder)
	router.PUT("/orders/:id", h.updateOrderStatus)
	router.GET("/orders/:id/invoice", h.orderInvoice)

	router.GET("/settings", h.getSettings)
	router.POST("/settings", h.saveSettings)

	router.POST("/seed", h.seed)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
