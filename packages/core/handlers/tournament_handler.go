package handlers

import (
	"net/http"
	"strings"

	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// @Summary Start a tournament
// @Description Draw a new 8-team knockout bracket around the chosen team, replacing the current one
// @Tags tournament
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournament body models.StartTournamentRequest true "Team to play with"
// @Success 201 {object} models.TournamentView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tournament [post]
func (h *TournamentHandler) StartTournament(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req models.StartTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.tournamentService.Start(id, strings.ToUpper(req.Team))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Get the tournament
// @Description Get the bracket in progress
// @Tags tournament
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TournamentView
// @Failure 404 {object} map[string]string
// @Router /tournament [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.tournamentService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Next tournament fixture
// @Description Get the node the tracked team plays in the current round
// @Tags tournament
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TournamentNode
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Knocked out or tournament over"
// @Router /tournament/next [get]
func (h *TournamentHandler) GetNextFixture(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	_, node, err := h.tournamentService.NextFixture(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}

// @Summary Simulate the rest of the tournament
// @Description Play out the remaining rounds once the tracked team is knocked out
// @Tags tournament
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TournamentView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tournament/simulate [post]
func (h *TournamentHandler) SimulateTournament(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.tournamentService.SimulateRemaining(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Abandon the tournament
// @Tags tournament
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /tournament [delete]
func (h *TournamentHandler) AbandonTournament(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	if err := h.tournamentService.Abandon(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
