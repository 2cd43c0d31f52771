package handlers

import (
	"net/http"
	"strings"

	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// @Summary Start a match
// @Description Open a live match. League and tournament matches play the pending fixture of the competition.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.StartMatchRequest true "Match setup"
// @Success 201 {object} services.SessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "A match is already live"
// @Router /matches [post]
func (h *MatchHandler) StartMatch(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req models.StartMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Team = strings.ToUpper(req.Team)
	req.Opponent = strings.ToUpper(req.Opponent)

	view, err := h.matchService.Start(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Current match
// @Description Get the live match of the authenticated profile
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.SessionView
// @Failure 404 {object} map[string]string
// @Router /matches/current [get]
func (h *MatchHandler) GetCurrentMatch(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.matchService.Current(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	view, err := h.matchService.Get(profile, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Score a goal
// @Description Register a goal for the player or the opponent while the clock runs
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param goal body models.GoalRequest true "Scoring side"
// @Success 200 {object} services.SessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/goal [post]
func (h *MatchHandler) Goal(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	var req models.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.matchService.Goal(profile, sessionID, match.Side(req.Side))
	h.respond(c, view, err)
}

// @Summary Pause the match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/pause [post]
func (h *MatchHandler) Pause(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	view, err := h.matchService.Pause(profile, sessionID)
	h.respond(c, view, err)
}

// @Summary Resume the match
// @Description Leave the pause through a fresh countdown
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/resume [post]
func (h *MatchHandler) Resume(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	view, err := h.matchService.Resume(profile, sessionID)
	h.respond(c, view, err)
}

// @Summary Leave a break
// @Description Start the next segment after half-time or an overtime break
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/continue [post]
func (h *MatchHandler) Continue(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	view, err := h.matchService.Continue(profile, sessionID)
	h.respond(c, view, err)
}

// @Summary Report the shootout
// @Description Hand back the outcome of the penalty shootout
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param shootout body models.ShootoutResultRequest true "Shootout outcome"
// @Success 200 {object} services.SessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/shootout [post]
func (h *MatchHandler) Shootout(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	var req models.ShootoutResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := match.ShootoutOutcome{
		Winner: match.ShootoutWinner(req.Winner),
		Scores: match.ShootoutScores{Player: req.PlayerScore, AI: req.AIScore},
	}
	view, err := h.matchService.Shootout(profile, sessionID, outcome)
	h.respond(c, view, err)
}

// @Summary Finish the match
// @Description Close a completed match and fold its result into the competition and the history
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.MatchOutcome
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/finish [post]
func (h *MatchHandler) Finish(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	outcome, err := h.matchService.Finish(profile, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// @Summary Forfeit the match
// @Description Discard the match. The competition fixture stays pending.
// @Tags matches
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/forfeit [post]
func (h *MatchHandler) Forfeit(c *gin.Context) {
	profile, sessionID, ok := h.params(c)
	if !ok {
		return
	}

	if err := h.matchService.Forfeit(profile, sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MatchHandler) params(c *gin.Context) (uint, uuid.UUID, bool) {
	profile, ok := profileID(c)
	if !ok {
		return 0, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return 0, uuid.Nil, false
	}
	return profile, sessionID, true
}

func (h *MatchHandler) respond(c *gin.Context, view *services.SessionView, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
