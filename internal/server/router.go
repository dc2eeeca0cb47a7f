package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samvitchoudhary/bucketlist/internal/auth"
	"github.com/samvitchoudhary/bucketlist/internal/config"
	"github.com/samvitchoudhary/bucketlist/internal/item"
	"github.com/samvitchoudhary/bucketlist/internal/list"
	"github.com/samvitchoudhary/bucketlist/internal/metrics"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config      config.Config
	DB          *pgxpool.Pool
	AuthService *auth.Service
	ListService *list.Service
	ItemService *item.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.AuthService != nil {
		auth.RegisterRoutes(api, deps.AuthService)

		protected := api.Group("/")
		protected.Use(auth.AuthMiddleware(deps.AuthService))
		auth.RegisterProtectedRoutes(protected, deps.AuthService)

		if deps.ListService != nil {
			list.RegisterRoutes(protected, deps.ListService)
		}
		if deps.ItemService != nil {
			item.RegisterRoutes(protected, deps.ItemService)
		}
	}

	return router
}
