package api

import (
	"github.com/Nicco6598/sillage-sub000/internal/api/handler"
	"github.com/Nicco6598/sillage-sub000/internal/api/middleware"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the handler set mounted by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Fragrance  *handler.FragranceHandler
	Similarity *handler.SimilarityHandler
	Review     *handler.ReviewHandler
	Collection *handler.CollectionHandler
	Admin      *handler.AdminHandler
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(h Handlers, log *logger.Logger, mode string, cors middleware.CORSConfig) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))
	r.Use(middleware.Identity())

	// Health check
	r.GET("/health", h.Health.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Catalog
		v1.GET("/fragrances", h.Fragrance.ListFragrances)
		v1.GET("/fragrances/:id", h.Fragrance.GetFragrance)
		v1.GET("/brands", h.Fragrance.ListBrands)

		// Similarity suggestions and votes
		v1.GET("/fragrances/:id/similar", h.Similarity.ListSimilar)
		v1.POST("/fragrances/:id/similar", h.Similarity.Suggest)
		v1.GET("/fragrances/:id/similar/votes", h.Similarity.UserVotes)
		v1.POST("/similar/:edgeID/vote", h.Similarity.Vote)

		// Reviews and community stats
		v1.GET("/fragrances/:id/reviews", h.Review.ListReviews)
		v1.POST("/fragrances/:id/reviews", h.Review.SubmitReview)
		v1.DELETE("/reviews/:id", h.Review.DeleteReview)
		v1.GET("/fragrances/:id/stats", h.Review.Stats)

		// Collections
		v1.POST("/collections", h.Collection.CreateCollection)
		v1.GET("/collections", h.Collection.ListCollections)
		v1.GET("/collections/favorites", h.Collection.Favorites)
		v1.GET("/collections/:id/items", h.Collection.ListItems)
		v1.POST("/collections/:id/items", h.Collection.AddItem)
		v1.DELETE("/collections/:id/items/:fragranceID", h.Collection.RemoveItem)
		v1.DELETE("/collections/:id", h.Collection.DeleteCollection)

		// Admin
		v1.POST("/admin/ingest", h.Admin.TriggerIngest)
		v1.GET("/admin/ingest/status", h.Admin.GetIngestStatus)
		v1.GET("/admin/jobs", h.Admin.ListJobs)
		v1.GET("/admin/stats", h.Admin.CatalogStats)
	}

	return r
}
