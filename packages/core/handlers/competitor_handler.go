package handlers

import (
	"net/http"
	"strings"

	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
)

type CompetitorHandler struct {
	catalog services.Catalog
}

func NewCompetitorHandler(catalog services.Catalog) *CompetitorHandler {
	return &CompetitorHandler{
		catalog: catalog,
	}
}

// @Summary List competitors
// @Description Get the whole competitor catalog, sorted by name
// @Tags competitors
// @Produce json
// @Success 200 {array} models.Competitor
// @Failure 500 {object} map[string]string
// @Router /competitors [get]
func (h *CompetitorHandler) GetCompetitors(c *gin.Context) {
	competitors, err := h.catalog.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, competitors)
}

// @Summary Get competitor
// @Description Get one competitor by its short code
// @Tags competitors
// @Produce json
// @Param code path string true "Competitor code"
// @Success 200 {object} models.Competitor
// @Failure 404 {object} map[string]string
// @Router /competitors/{code} [get]
func (h *CompetitorHandler) GetCompetitor(c *gin.Context) {
	competitor, err := h.catalog.Get(strings.ToUpper(c.Param("code")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, competitor)
}

// @Summary Add competitor
// @Description Add a competitor to the catalog (admin only)
// @Tags competitors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param competitor body models.CreateCompetitorRequest true "Competitor data"
// @Success 201 {object} models.Competitor
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /competitors [post]
func (h *CompetitorHandler) CreateCompetitor(c *gin.Context) {
	var req models.CreateCompetitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	competitor := &models.Competitor{
		Code:   strings.ToUpper(req.Code),
		Name:   req.Name,
		Color1: req.Color1,
		Color2: req.Color2,
	}
	if err := h.catalog.Create(competitor); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, competitor)
}

// @Summary Remove competitor
// @Description Remove a competitor from the catalog (admin only)
// @Tags competitors
// @Security BearerAuth
// @Param code path string true "Competitor code"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /competitors/{code} [delete]
func (h *CompetitorHandler) DeleteCompetitor(c *gin.Context) {
	if err := h.catalog.Delete(strings.ToUpper(c.Param("code"))); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
