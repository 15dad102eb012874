package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/matjibmap/config"
	"github.com/gcbaptista/matjibmap/internal/jobs"
	"github.com/gcbaptista/matjibmap/internal/region"
	"github.com/gcbaptista/matjibmap/internal/session"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
)

// Dependencies are the services the handlers read from.
type Dependencies struct {
	Catalog  services.RestaurantCatalog
	Home     model.HomeContent
	Sessions *session.Manager
	Jobs     *jobs.Manager
	Regions  *region.Directory
	Config   *config.Config
}

// API holds dependencies for API handlers.
type API struct {
	catalog  services.RestaurantCatalog
	home     model.HomeContent
	sessions *session.Manager
	jobs     *jobs.Manager
	regions  *region.Directory
	config   *config.Config
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	regions := deps.Regions
	if regions == nil {
		regions = region.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &API{
		catalog:  deps.Catalog,
		home:     deps.Home,
		sessions: deps.Sessions,
		jobs:     deps.Jobs,
		regions:  regions,
		config:   cfg,
	}
}

// SetupRoutes installs the middleware chain and every API route.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	apiHandler := NewAPI(deps)

	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(),
		CORSMiddleware(apiHandler.config.Server.CORSOrigins),
		RequestSizeLimitMiddleware(apiHandler.config.Server.MaxBodyBytes),
	)

	// Health and metrics
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static content
	router.GET("/map/config", apiHandler.GetMapConfigHandler)
	router.GET("/home", apiHandler.GetHomeHandler)
	router.GET("/catalog/categories", apiHandler.ListCategoriesHandler)
	router.GET("/catalog/features", apiHandler.ListFeaturesHandler)
	router.GET("/regions", apiHandler.GetRegionsHandler)
	router.POST("/preferences/score", apiHandler.ScorePreferencesHandler)

	// Restaurant routes
	restaurantRoutes := router.Group("/restaurants")
	{
		restaurantRoutes.GET("", apiHandler.ListRestaurantsHandler) // Stateless filtered list
		restaurantRoutes.GET("/:id", apiHandler.GetRestaurantHandler)
	}

	// Job routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Session routes
	router.POST("/sessions", apiHandler.CreateSessionHandler)
	sessionRoutes := router.Group("/sessions/:sessionId")
	{
		sessionRoutes.GET("", apiHandler.GetSessionHandler)
		sessionRoutes.DELETE("", apiHandler.DeleteSessionHandler)
		sessionRoutes.GET("/restaurants", apiHandler.ListSessionRestaurantsHandler)
		sessionRoutes.GET("/jobs", apiHandler.ListSessionJobsHandler)

		filterRoutes := sessionRoutes.Group("/filters")
		{
			filterRoutes.GET("", apiHandler.GetFiltersHandler)
			filterRoutes.POST("/categories/:category", apiHandler.ToggleCategoryHandler) // Toggle
			filterRoutes.POST("/features/:feature", apiHandler.ToggleFeatureHandler)     // Toggle
			filterRoutes.PUT("/price", apiHandler.SetPriceRangeHandler)
			filterRoutes.PUT("/rating", apiHandler.SetMinRatingHandler)
			filterRoutes.PUT("/distance", apiHandler.SetMaxDistanceHandler)
			filterRoutes.PUT("/query", apiHandler.SetQueryHandler)
			filterRoutes.POST("/reset", apiHandler.ResetFiltersHandler)
		}

		recommendationRoutes := sessionRoutes.Group("/recommendation")
		{
			recommendationRoutes.POST("", apiHandler.RequestRecommendationHandler)
			recommendationRoutes.GET("", apiHandler.GetRecommendationHandler)
			recommendationRoutes.DELETE("", apiHandler.ResetRecommendationHandler)
		}

		mapRoutes := sessionRoutes.Group("/map")
		{
			mapRoutes.POST("/init", apiHandler.InitMapHandler)
			mapRoutes.GET("/markers", apiHandler.GetMarkersHandler)
			mapRoutes.POST("/markers/:restaurantId/click", apiHandler.ClickMarkerHandler)
			mapRoutes.DELETE("/selection", apiHandler.ClearSelectionHandler)
		}

		bookmarkRoutes := sessionRoutes.Group("/bookmarks")
		{
			bookmarkRoutes.GET("", apiHandler.ListBookmarksHandler)
			bookmarkRoutes.POST("/:restaurantId", apiHandler.ToggleBookmarkHandler) // Toggle
		}
	}
}

// HealthCheckHandler provides a simple health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "matjibmap",
		"timestamp": time.Now().Unix(),
	})
}
