// Package router wires HTTP routes to their handlers. The /api paths
// are load-bearing: existing map clients hardcode them, so they must
// not change shape.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/jaeyun/matzip-map/internal/config"
	"github.com/jaeyun/matzip-map/internal/handler"
	"github.com/jaeyun/matzip-map/internal/middleware"
)

// Handlers collects everything the router needs to register the API.
type Handlers struct {
	Restaurants *handler.RestaurantHandler
	Users       *handler.UserHandler
	Search      *handler.SearchHandler
	Models      *handler.ModelHandler
}

// Register sets up middleware and all routes on the Echo instance.
// rdb may be nil; the cache and rate limiter then disable themselves.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.Use(middleware.CORS())

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	restaurants := api.Group("/restaurants")
	restaurants.GET("", h.Restaurants.List,
		middleware.NewRestaurantCache(config.LoadCacheConfig(), rdb))
	restaurants.POST("", h.Restaurants.Create)
	restaurants.PUT("/:id", h.Restaurants.Update)
	restaurants.DELETE("/:id/:userId", h.Restaurants.Delete)

	users := api.Group("/users")
	users.POST("/register", h.Users.Register)
	users.POST("/login", h.Users.Login)
	// /me must register before the wildcard nickname route.
	users.GET("/me", h.Users.Me, middleware.JWTAuth(cfg.JWTSecret))
	users.GET("/:nickname", h.Users.Get)

	api.POST("/search-place", h.Search.SearchPlace,
		middleware.NewSearchLimiter(config.LoadRateLimitConfig(), rdb))

	api.POST("/upload-model", h.Models.Upload)
	api.GET("/models/:fileName", h.Models.Download)

	// Everything outside /api serves the pre-built SPA; extensionless
	// paths fall back to index.html so the client-side router works.
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return len(p) >= 5 && p[:5] == "/api/"
		},
	}))
}
