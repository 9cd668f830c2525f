package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/Nicco6598/sillage-sub000/internal/source"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles catalog administration operations.
type AdminHandler struct {
	ingestService *service.IngestService
	sources       map[string]source.Source
	jobRepo       *repository.JobRepository
	fragranceRepo *repository.FragranceRepository
	logger        *logger.Logger

	// Ingest run state
	mu            sync.RWMutex
	isRunning     bool
	currentStats  *service.IngestStats
	lastRunTime   time.Time
	lastRunStatus string
}

// NewAdminHandler creates a new admin handler.
// Parameters:
//   - ingestService: ingest service instance.
//   - sources: map of source adapters keyed by name.
//   - jobRepo: repository for ingest job history.
//   - fragranceRepo: repository for catalog counts.
//   - log: logger instance.
// Returns:
//   - *AdminHandler: initialized handler.
func NewAdminHandler(
	ingestService *service.IngestService,
	sources map[string]source.Source,
	jobRepo *repository.JobRepository,
	fragranceRepo *repository.FragranceRepository,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		ingestService: ingestService,
		sources:       sources,
		jobRepo:       jobRepo,
		fragranceRepo: fragranceRepo,
		logger:        log,
	}
}

// IngestRequest represents the ingest API request.
type IngestRequest struct {
	Source string `json:"source" binding:"required"`
	Limit  int    `json:"limit" binding:"required,min=1,max=10000"`
	Force  bool   `json:"force"`
}

// IngestResponse represents the ingest API response.
type IngestResponse struct {
	Message string               `json:"message"`
	Stats   *service.IngestStats `json:"stats,omitempty"`
}

// IngestStatusResponse represents the ingest status.
type IngestStatusResponse struct {
	IsRunning     bool                 `json:"is_running"`
	LastRunTime   string               `json:"last_run_time,omitempty"`
	LastRunStatus string               `json:"last_run_status,omitempty"`
	CurrentStats  *service.IngestStats `json:"current_stats,omitempty"`
}

// TriggerIngest handles POST /api/v1/admin/ingest.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AdminHandler) TriggerIngest(c *gin.Context) {
	ctx := c.Request.Context()

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid ingest request: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.CtxInfo(ctx, "Received ingest request: source=%s, limit=%d, force=%v, client_ip=%s",
		req.Source, req.Limit, req.Force, c.ClientIP())

	// Check if ingest is already running
	h.mu.RLock()
	if h.isRunning {
		h.mu.RUnlock()
		logger.CtxWarn(ctx, "Ingest request rejected: already running, source=%s, client_ip=%s",
			req.Source, c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "Ingest is already running"})
		return
	}
	h.mu.RUnlock()

	src, ok := h.sources[req.Source]
	if !ok {
		logger.CtxWarn(ctx, "Unknown source requested: source=%s, client_ip=%s", req.Source, c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown source: " + req.Source})
		return
	}

	h.mu.Lock()
	h.isRunning = true
	h.currentStats = nil
	h.mu.Unlock()

	// Run ingest (use background context to avoid cancellation on HTTP timeout)
	ingestCtx := context.Background()
	startTime := time.Now()
	stats, err := h.ingestService.IngestFromSource(ingestCtx, src, req.Limit, &service.IngestOptions{
		Force: req.Force,
	})
	duration := time.Since(startTime)

	h.mu.Lock()
	h.isRunning = false
	h.currentStats = stats
	h.lastRunTime = time.Now()
	if err != nil {
		h.lastRunStatus = "failed: " + err.Error()
	} else {
		h.lastRunStatus = "success"
	}
	h.mu.Unlock()

	if err != nil {
		logger.With(logger.Fields{
			logger.FieldDurationMs: duration.Milliseconds(),
		}).Error(ctx, "Ingest process failed: source=%s, limit=%d, force=%v, error=%v",
			req.Source, req.Limit, req.Force, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: duration.Milliseconds(),
		logger.FieldCount:      stats.ProcessedItems,
	}).Info(ctx, "Ingest process completed: source=%s, total=%d, processed=%d, skipped=%d, failed=%d",
		req.Source, stats.TotalItems, stats.ProcessedItems, stats.SkippedItems, stats.FailedItems)

	c.JSON(http.StatusOK, IngestResponse{
		Message: "Ingest completed successfully",
		Stats:   stats,
	})
}

// GetIngestStatus handles GET /api/v1/admin/ingest/status.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AdminHandler) GetIngestStatus(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ctx := c.Request.Context()
	logger.CtxDebug(ctx, "Ingest status requested: client_ip=%s, is_running=%v", c.ClientIP(), h.isRunning)

	resp := IngestStatusResponse{
		IsRunning:     h.isRunning,
		LastRunStatus: h.lastRunStatus,
		CurrentStats:  h.currentStats,
	}

	if !h.lastRunTime.IsZero() {
		resp.LastRunTime = h.lastRunTime.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

// ListJobs handles GET /api/v1/admin/jobs.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AdminHandler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	jobs, err := h.jobRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": jobs,
	})
}

// CatalogStats handles GET /api/v1/admin/stats.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AdminHandler) CatalogStats(c *gin.Context) {
	active, err := h.fragranceRepo.CountByStatus(c.Request.Context(), domain.FragranceStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_fragrances": active,
	})
}
