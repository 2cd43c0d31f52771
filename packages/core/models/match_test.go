package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsImpossibleResults(t *testing.T) {
	three := 3
	cases := map[string]MatchResult{
		"negative score":        {Team1Score: -1, Team2Score: 2},
		"one-sided shootout":    {Team1Score: 1, Team2Score: 1, Team1Penalties: &three},
		"negative shootout":     NewPenaltyResult(1, -1, 3),
		"shootout after a win":  {Team1Score: 2, Team2Score: 1, Team1Penalties: &three, Team2Penalties: &three},
		"shootout ending level": NewPenaltyResult(0, 4, 4),
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.Validate(), ErrInvalidResult)
		})
	}
}

func TestValidateAcceptsPlayableResults(t *testing.T) {
	assert.NoError(t, MatchResult{Team1Score: 4, Team2Score: 0}.Validate())
	assert.NoError(t, MatchResult{Team1Score: 2, Team2Score: 2}.Validate())
	assert.NoError(t, NewPenaltyResult(1, 5, 4).Validate())
}
