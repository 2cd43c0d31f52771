package handlers

import (
	"net/http"
	"strconv"

	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	historyService *services.HistoryService
}

func NewStatsHandler(historyService *services.HistoryService) *StatsHandler {
	return &StatsHandler{
		historyService: historyService,
	}
}

// @Summary Match history
// @Description Get the finished matches of the authenticated profile, newest first
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} models.PaginatedMatchRecordResponse
// @Failure 400 {object} map[string]string
// @Router /matches/history [get]
func (h *StatsHandler) GetHistory(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pageSize"})
		return
	}

	response, err := h.historyService.List(id, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Profile statistics
// @Description Win, draw and loss counts of the authenticated profile
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Stats
// @Router /matches/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	stats, err := h.historyService.Stats(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
