package server

import (
	"database/sql"
	"strings"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/chic-commerce/storefront-api/internal/auth"
	"github.com/chic-commerce/storefront-api/internal/banner"
	"github.com/chic-commerce/storefront-api/internal/cart"
	"github.com/chic-commerce/storefront-api/internal/category"
	"github.com/chic-commerce/storefront-api/internal/checkout"
	"github.com/chic-commerce/storefront-api/internal/config"
	"github.com/chic-commerce/storefront-api/internal/logging"
	"github.com/chic-commerce/storefront-api/internal/order"
	"github.com/chic-commerce/storefront-api/internal/payment"
	"github.com/chic-commerce/storefront-api/internal/product"
	"github.com/chic-commerce/storefront-api/internal/promo"
	"github.com/chic-commerce/storefront-api/internal/settings"
	"github.com/chic-commerce/storefront-api/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Repositories groups one backend per aggregate.
type Repositories struct {
	Categories category.Repository
	Products   product.Repository
	Banners    banner.Repository
	Settings   settings.Repository
	Promos     promo.Repository
	Payments   payment.Repository
	Orders     order.Repository
	Carts      cart.Store
	Users      auth.Repository
}

// PostgresRepositories backs every aggregate with db.
func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Categories: category.NewPostgresRepository(db),
		Products:   product.NewPostgresRepository(db),
		Banners:    banner.NewPostgresRepository(db),
		Settings:   settings.NewPostgresRepository(db),
		Promos:     promo.NewPostgresRepository(db),
		Payments:   payment.NewPostgresRepository(db),
		Orders:     order.NewPostgresRepository(db),
		Carts:      cart.NewPostgresStore(db),
		Users:      auth.NewPostgresRepository(db),
	}
}

// InMemoryRepositories keeps everything in process memory.
func InMemoryRepositories() Repositories {
	return Repositories{
		Categories: category.NewInMemoryRepository(nil),
		Products:   product.NewInMemoryRepository(nil),
		Banners:    banner.NewInMemoryRepository(nil),
		Settings:   settings.NewInMemoryRepository(nil),
		Promos:     promo.NewInMemoryRepository(nil),
		Payments:   payment.NewInMemoryRepository(nil),
		Orders:     order.NewInMemoryRepository(nil),
		Carts:      cart.NewInMemoryStore(),
		Users:      auth.NewInMemoryRepository(nil),
	}
}

// Services are the wired business components; cmd/seed reuses them.
type Services struct {
	Categories *category.Service
	Products   *product.Service
	Banners    *banner.Service
	Settings   *settings.Service
	Promos     *promo.Service
	Payments   *payment.Service
	Orders     *order.Service
	Carts      *cart.Service
	Checkout   *checkout.Service
	Auth       *auth.Service
}

func NewServices(cfg *config.Config, repos Repositories, logger *zap.Logger) *Services {
	s := &Services{
		Categories: category.NewService(repos.Categories),
		Banners:    banner.NewService(repos.Banners),
		Settings:   settings.NewService(repos.Settings, logger.Named("settings")),
		Promos:     promo.NewService(repos.Promos),
		Payments:   payment.NewService(repos.Payments),
		Orders:     order.NewService(repos.Orders, logger.Named("order")),
		Auth:       auth.NewService(repos.Users, cfg.JWTSecret, cfg.JWTTTL, logger.Named("auth")),
	}
	s.Products = product.NewService(repos.Products, s.Categories)
	s.Carts = cart.NewService(repos.Carts, s.Products, logger.Named("cart"))
	s.Checkout = checkout.NewService(s.Carts, s.Settings, s.Promos, s.Payments, s.Orders, logger.Named("checkout"))
	return s
}

// New builds the HTTP application.
func New(cfg *config.Config, svc *Services, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront-api",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error { return apperror.Respond(c, err) },
	})
	app.Use(recover.New())
	app.Use(logging.RequestLogger(logger.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + cart.SessionHeader,
		ExposeHeaders:    cart.SessionHeader,
		AllowCredentials: !strings.Contains(cfg.AllowOrigins, "*"),
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	sessions := cart.SessionMiddleware(cfg.CartCookieName, cfg.IsProduction())
	app.Use("/api/v1/cart", sessions)
	app.Use("/api/v1/checkout", sessions)

	uploads := storage.NewHandler(storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL), logger.Named("storage"))
	uploads.RegisterStatic(app)

	settingsHandler := settings.NewHandler(svc.Settings)
	categoryHandler := category.NewHandler(svc.Categories)
	productHandler := product.NewHandler(svc.Products)
	bannerHandler := banner.NewHandler(svc.Banners)
	promoHandler := promo.NewHandler(svc.Promos)
	paymentHandler := payment.NewHandler(svc.Payments)
	orderHandler := order.NewHandler(svc.Orders)
	authHandler := auth.NewHandler(svc.Auth, cfg.IsProduction())

	settingsHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	bannerHandler.RegisterPublicRoutes(app)
	promoHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	cart.NewHandler(svc.Carts).RegisterPublicRoutes(app)
	checkout.NewHandler(svc.Checkout).RegisterPublicRoutes(app)
	authHandler.RegisterPublicRoutes(app)

	requireToken := auth.RequireToken(cfg.JWTSecret)
	requireAdmin := auth.RequireAdmin(svc.Auth)
	authHandler.RegisterProtectedRoutes(app, requireToken, requireAdmin)

	admin := app.Group("/api/v1/admin", requireToken, requireAdmin)
	settingsHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	bannerHandler.RegisterAdminRoutes(admin)
	promoHandler.RegisterAdminRoutes(admin)
	paymentHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	uploads.RegisterAdminRoutes(admin)

	return app
}
