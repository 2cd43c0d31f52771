package handlers

import (
	"net/http"
	"strings"

	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
)

type LeagueHandler struct {
	leagueService *services.LeagueService
}

func NewLeagueHandler(leagueService *services.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
	}
}

// @Summary Start a league
// @Description Start a new round-robin league over the whole catalog, replacing the current one
// @Tags league
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param league body models.StartLeagueRequest true "Team to play with"
// @Success 201 {object} models.LeagueView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /league [post]
func (h *LeagueHandler) StartLeague(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req models.StartLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.leagueService.Start(id, strings.ToUpper(req.Team))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Get the league
// @Description Get the league in progress with its table and the next fixture
// @Tags league
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.LeagueView
// @Failure 404 {object} map[string]string
// @Router /league [get]
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.leagueService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Next league fixture
// @Description Get the fixture the tracked team plays this week
// @Tags league
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Fixture
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Bye week or league over"
// @Router /league/next [get]
func (h *LeagueHandler) GetNextFixture(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	_, fixture, err := h.leagueService.NextFixture(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

// @Summary Simulate a bye week
// @Description Close a week in which the tracked team does not play
// @Tags league
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.LeagueView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /league/simulate-week [post]
func (h *LeagueHandler) SimulateWeek(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.leagueService.SimulateByeWeek(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Abandon the league
// @Tags league
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /league [delete]
func (h *LeagueHandler) AbandonLeague(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	if err := h.leagueService.Abandon(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
