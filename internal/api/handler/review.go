package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nicco6598/sillage-sub000/internal/api/middleware"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review submission and community stats endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler.
// Parameters:
//   - reviewService: review service instance.
// Returns:
//   - *ReviewHandler: initialized handler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListReviews handles GET /api/v1/fragrances/:id/reviews.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListForFragrance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// SubmitReview handles POST /api/v1/fragrances/:id/reviews.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReview) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/v1/reviews/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/v1/fragrances/:id/stats.
// The optional years query parameter is a comma-separated list of production
// years restricting which reviews feed the aggregates.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) Stats(c *gin.Context) {
	years, err := parseYears(c.Query("years"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid years filter: " + err.Error(),
		})
		return
	}

	result, err := h.reviewService.Stats(c.Request.Context(), c.Param("id"), years)
	if err != nil {
		if errors.Is(err, service.ErrNoMatchingReviews) {
			c.JSON(http.StatusOK, gin.H{
				"stats":   nil,
				"message": "no reviews match the requested filter",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseYears parses a comma-separated year list; an empty input is no filter.
func parseYears(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var years []int
	for _, token := range strings.Split(raw, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, nil
}
