package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	invalid := models.MatchResult{Team1Score: -1}.Validate()

	assert.Equal(t, http.StatusBadRequest, statusFor(invalid))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("league: %w", models.ErrInvalidResult)))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("lookup: %w", services.ErrSessionNotFound)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("connection refused")))
}
