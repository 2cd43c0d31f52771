package handlers

import (
	"errors"
	"net/http"

	authMiddleware "bab-arcade/packages/auth/middleware"
	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
)

var (
	notFound = []error{
		services.ErrCompetitorNotFound,
		services.ErrNoActiveLeague,
		services.ErrNoActiveTournament,
		services.ErrSessionNotFound,
	}
	badRequest = []error{
		services.ErrInvalidMatch,
		models.ErrInvalidResult,
		engine.ErrUndecidedResult,
		match.ErrInvalidShootout,
		match.ErrInvalidSetup,
	}
	conflict = []error{
		services.ErrCompetitorExists,
		services.ErrSessionActive,
		services.ErrNoFixture,
		engine.ErrFixtureNotFound,
		engine.ErrAlreadyResolved,
		engine.ErrCompetitionFinished,
		engine.ErrTrackedStillIn,
		engine.ErrNotEnoughCompetitors,
		match.ErrAlreadyStarted,
		match.ErrNotStarted,
		match.ErrNotRunning,
		match.ErrNotPaused,
		match.ErrNoBreak,
		match.ErrNoShootout,
		match.ErrNotComplete,
		match.ErrCannotForfeit,
	}
)

func statusFor(err error) int {
	for _, group := range []struct {
		status int
		errs   []error
	}{
		{http.StatusNotFound, notFound},
		{http.StatusBadRequest, badRequest},
		{http.StatusConflict, conflict},
	} {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func profileID(c *gin.Context) (uint, bool) {
	id, ok := authMiddleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}
