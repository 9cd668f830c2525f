package handler

import (
	"errors"
	"net/http"

	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError translates service errors into HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrFragranceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "fragrance not found"})
	case errors.Is(err, service.ErrEdgeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "similarity suggestion not found"})
	case errors.Is(err, service.ErrInvalidVoteValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": "vote value must be 1 or -1"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "collection not found or not owned by caller"})
	case errors.Is(err, service.ErrReviewRejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "review rejected by moderation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
