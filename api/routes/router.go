package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kinmelhq/kinmel-backend/api/controllers"
	"github.com/kinmelhq/kinmel-backend/api/middleware"
	"github.com/kinmelhq/kinmel-backend/internal/auth"
	"github.com/kinmelhq/kinmel-backend/internal/cart"
	"github.com/kinmelhq/kinmel-backend/internal/categories"
	"github.com/kinmelhq/kinmel-backend/internal/products"
	"github.com/kinmelhq/kinmel-backend/pkg/config"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
	"github.com/kinmelhq/kinmel-backend/pkg/logger"
	"github.com/kinmelhq/kinmel-backend/pkg/metrics"
	"github.com/kinmelhq/kinmel-backend/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    controllers.Pinger
	RedisClient *redis.Client
	UserChecker middleware.UserChecker

	AuthService       auth.Service
	CategoriesService categories.Service
	ProductsService   products.Service
	CartService       cart.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		metrics.HTTPMiddleware,
		middleware.Timeout(cfg.App.RequestTimeout),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": deps.DBPinger,
			"redis":    deps.RedisClient,
		}))
	})

	r.Get("/ping", controllers.PublicPing())
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/user", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).
			Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
	})

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.UserChecker, logg))

		r.Get("/private/ping", controllers.PrivatePing())

		r.Route("/category", func(r chi.Router) {
			r.Post("/add", controllers.CategoryAdd(deps.CategoriesService, logg))
			r.Get("/all", controllers.CategoryList(deps.CategoriesService, logg))
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/details/{id}", controllers.ProductDetails(deps.ProductsService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleBuyer, logg))
				r.Post("/buyer/all", controllers.ProductBuyerList(deps.ProductsService, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleSeller, logg))
				r.Post("/add", controllers.ProductAdd(deps.ProductsService, logg))
				r.Put("/edit/{id}", controllers.ProductEdit(deps.ProductsService, logg))
				r.Delete("/delete/{id}", controllers.ProductDelete(deps.ProductsService, logg))
				r.Post("/seller/all", controllers.ProductSellerList(deps.ProductsService, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleBuyer, logg))
			r.Post("/add/item", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/remove/item/{id}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Put("/update/quantity/{id}", controllers.CartUpdateQuantity(deps.CartService, logg))
			r.Get("/details", controllers.CartDetails(deps.CartService, logg))
			r.Get("/count", controllers.CartCount(deps.CartService, logg))
		})
	})

	return r
}
