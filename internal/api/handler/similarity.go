package handler

import (
	"net/http"

	"github.com/Nicco6598/sillage-sub000/internal/api/middleware"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// SimilarityHandler handles similarity suggestion and voting endpoints.
type SimilarityHandler struct {
	similarityService *service.SimilarityService
}

// NewSimilarityHandler creates a new similarity handler.
// Parameters:
//   - similarityService: similarity service instance.
// Returns:
//   - *SimilarityHandler: initialized handler.
func NewSimilarityHandler(similarityService *service.SimilarityService) *SimilarityHandler {
	return &SimilarityHandler{
		similarityService: similarityService,
	}
}

// SuggestRequest represents a similarity suggestion request body.
type SuggestRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// Suggest handles POST /api/v1/fragrances/:id/similar.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SimilarityHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	edgeID, err := h.similarityService.Suggest(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}

	// A suggestion that already existed, or that pointed a fragrance at
	// itself, is silently absorbed.
	if edgeID == "" {
		c.JSON(http.StatusOK, gin.H{
			"created": false,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"edge_id": edgeID,
	})
}

// ListSimilar handles GET /api/v1/fragrances/:id/similar.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SimilarityHandler) ListSimilar(c *gin.Context) {
	showAll := c.Query("all") == "true"

	edges, total, err := h.similarityService.ListSimilar(c.Request.Context(), c.Param("id"), showAll)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"similar": edges,
		"total":   total,
	})
}

// VoteRequest represents a similarity vote request body.
type VoteRequest struct {
	Value int `json:"value" binding:"required"`
}

// Vote handles POST /api/v1/similar/:edgeID/vote.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SimilarityHandler) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	score, err := h.similarityService.CastVote(c.Request.Context(), c.Param("edgeID"), middleware.UserID(c), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// UserVotes handles GET /api/v1/fragrances/:id/similar/votes.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SimilarityHandler) UserVotes(c *gin.Context) {
	votes, err := h.similarityService.UserVotes(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"votes": votes,
	})
}
