package handler

import (
	"net/http"

	"github.com/Nicco6598/sillage-sub000/internal/api/middleware"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// CollectionHandler handles user collection endpoints.
type CollectionHandler struct {
	collectionService *service.CollectionService
}

// NewCollectionHandler creates a new collection handler.
// Parameters:
//   - collectionService: collection service instance.
// Returns:
//   - *CollectionHandler: initialized handler.
func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// CreateCollectionRequest represents a collection creation request body.
type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCollection handles POST /api/v1/collections.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, collection)
}

// ListCollections handles GET /api/v1/collections.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	collections, err := h.collectionService.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
	})
}

// Favorites handles GET /api/v1/collections/favorites. The favorites
// collection is created on first access.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) Favorites(c *gin.Context) {
	collection, err := h.collectionService.Favorites(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, collection)
}

// AddItemRequest represents a collection item request body.
type AddItemRequest struct {
	FragranceID string `json:"fragrance_id" binding:"required"`
}

// AddItem handles POST /api/v1/collections/:id/items.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.collectionService.AddItem(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.FragranceID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/v1/collections/:id/items/:fragranceID.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) RemoveItem(c *gin.Context) {
	if err := h.collectionService.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("fragranceID")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListItems handles GET /api/v1/collections/:id/items.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) ListItems(c *gin.Context) {
	items, err := h.collectionService.Items(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// DeleteCollection handles DELETE /api/v1/collections/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	if err := h.collectionService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
