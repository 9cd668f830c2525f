package handler

import (
	"net/http"
	"strconv"

	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// FragranceHandler handles catalog browsing endpoints.
type FragranceHandler struct {
	catalogService *service.CatalogService
}

// NewFragranceHandler creates a new fragrance handler.
// Parameters:
//   - catalogService: catalog service instance.
// Returns:
//   - *FragranceHandler: initialized handler.
func NewFragranceHandler(catalogService *service.CatalogService) *FragranceHandler {
	return &FragranceHandler{
		catalogService: catalogService,
	}
}

// ListFragrances handles GET /api/v1/fragrances.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FragranceHandler) ListFragrances(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.ListFilter{
		BrandID: c.Query("brand_id"),
		Gender:  c.Query("gender"),
		Query:   c.Query("q"),
	}

	result, err := h.catalogService.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFragrance handles GET /api/v1/fragrances/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FragranceHandler) GetFragrance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Fragrance ID is required",
		})
		return
	}

	fragrance, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fragrance)
}

// ListBrands handles GET /api/v1/brands.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FragranceHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.Brands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
	})
}
