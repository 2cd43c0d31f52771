package engine

import (
	"testing"

	"bab-arcade/packages/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairKey(a, b models.Competitor) string {
	if a.Code > b.Code {
		a, b = b, a
	}
	return a.Code + "-" + b.Code
}

func TestGenerateRoundRobinCoversEveryPairOnce(t *testing.T) {
	for n := 2; n <= 13; n++ {
		teams := competitors(n)
		fixtures := GenerateRoundRobin(teams)

		require.Len(t, fixtures, n*(n-1)/2, "n=%d", n)

		seen := map[string]bool{}
		perRound := map[int]map[string]bool{}
		for _, f := range fixtures {
			key := pairKey(f.Team1, f.Team2)
			assert.False(t, seen[key], "pair %s scheduled twice (n=%d)", key, n)
			seen[key] = true

			assert.NotEqual(t, f.Team1.Code, f.Team2.Code)
			if perRound[f.Round] == nil {
				perRound[f.Round] = map[string]bool{}
			}
			for _, code := range []string{f.Team1.Code, f.Team2.Code} {
				assert.False(t, perRound[f.Round][code], "%s plays twice in round %d (n=%d)", code, f.Round, n)
				perRound[f.Round][code] = true
			}
		}

		padded := n + n%2
		for round := range perRound {
			assert.GreaterOrEqual(t, round, 1)
			assert.LessOrEqual(t, round, padded-1)
		}
		assert.Len(t, perRound, padded-1, "n=%d", n)
	}
}

func TestGenerateRoundRobinOddFieldHasNoBye(t *testing.T) {
	teams := competitors(5)
	fixtures := GenerateRoundRobin(teams)

	require.Len(t, fixtures, 10)
	known := map[string]bool{}
	for _, c := range teams {
		known[c.Code] = true
	}
	for _, f := range fixtures {
		assert.True(t, known[f.Team1.Code])
		assert.True(t, known[f.Team2.Code])
	}

	// every competitor sits out exactly one of the five rounds
	rounds := map[string]int{}
	for _, f := range fixtures {
		rounds[f.Team1.Code]++
		rounds[f.Team2.Code]++
	}
	for _, c := range teams {
		assert.Equal(t, 4, rounds[c.Code])
	}
}

func TestGenerateRoundRobinRotation(t *testing.T) {
	teams := competitors(4)
	fixtures := GenerateRoundRobin(teams)

	got := make([][3]string, 0, len(fixtures))
	for _, f := range fixtures {
		got = append(got, [3]string{string(rune('0' + f.Round)), f.Team1.Code, f.Team2.Code})
	}
	assert.Equal(t, [][3]string{
		{"1", "TA", "TD"}, {"1", "TC", "TB"},
		{"2", "TA", "TC"}, {"2", "TB", "TD"},
		{"3", "TA", "TB"}, {"3", "TD", "TC"},
	}, got)
}

func TestGenerateRoundRobinLeavesInputAlone(t *testing.T) {
	teams := competitors(6)
	before := append([]models.Competitor(nil), teams...)

	GenerateRoundRobin(teams)

	assert.Equal(t, before, teams)
}

func TestGenerateRoundRobinTooFew(t *testing.T) {
	assert.Empty(t, GenerateRoundRobin(nil))
	assert.Empty(t, GenerateRoundRobin(competitors(1)))
}
