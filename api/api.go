package api

import (
	"github.com/gin-gonic/gin"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Log  logger.Logger
	Cfg  config.Config
	Svc  services.CategoryServiceI
	Sync services.BreedSyncI
}

// New builds the HTTP router. All category reads are public; writes carry
// no auth here because the service sits behind the platform gateway.
func New(opts Options) *gin.Engine {
	switch opts.Cfg.Environment {
	case "production":
		gin.SetMode(config.ReleaseMode)
	case "test":
		gin.SetMode(config.TestMode)
	default:
		gin.SetMode(config.DebugMode)
	}

	h := &handler{
		log:  opts.Log,
		cfg:  opts.Cfg,
		svc:  opts.Svc,
		sync: opts.Sync,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.POST("", h.CreateCategory)
			categories.GET("/search", h.SearchCategories)
			categories.GET("/roots", h.GetRoots)
			categories.GET("/tree", h.GetTree)
			categories.GET("/popular", h.GetPopular)
			categories.GET("/slug/:slug", h.GetCategoryBySlug)

			categories.GET("/:id", h.GetCategory)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)
			categories.POST("/:id/deactivate", h.DeactivateCategory)
			categories.POST("/:id/reactivate", h.ReactivateCategory)
			categories.GET("/:id/children", h.GetChildren)
			categories.GET("/:id/breadcrumb", h.GetBreadcrumb)

			categories.GET("/:id/features", h.ListFeatures)
			categories.POST("/:id/features", h.AddFeature)
		}

		v1.DELETE("/features/:id", h.DeactivateFeature)

		sync := v1.Group("/sync")
		{
			sync.POST("/reconcile", h.ReconcileBreeds)
			sync.POST("/usage-sweep", h.SweepUsage)
		}
	}

	return router
}
