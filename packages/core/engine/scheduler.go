package engine

import "bab-arcade/packages/core/models"

// GenerateRoundRobin returns a single round-robin schedule using the circle
// method. Index 0 stays fixed while the others rotate one slot per round.
// An odd field gets a nil bye whose pairings are dropped from the output.
func GenerateRoundRobin(competitors []models.Competitor) []models.Fixture {
	if len(competitors) < 2 {
		return []models.Fixture{}
	}

	teams := make([]*models.Competitor, 0, len(competitors)+1)
	for i := range competitors {
		c := competitors[i]
		teams = append(teams, &c)
	}
	if len(teams)%2 != 0 {
		teams = append(teams, nil)
	}
	n := len(teams)

	fixtures := make([]models.Fixture, 0, len(competitors)*(len(competitors)-1)/2)
	for round := 1; round < n; round++ {
		for i := 0; i < n/2; i++ {
			home := teams[i]
			away := teams[n-1-i]
			if home == nil || away == nil {
				continue
			}
			// alternate sides so the fixed anchor is not always listed first
			if i%2 != 0 {
				home, away = away, home
			}
			fixtures = append(fixtures, models.Fixture{Round: round, Team1: *home, Team2: *away})
		}

		last := teams[n-1]
		copy(teams[2:], teams[1:n-1])
		teams[1] = last
	}

	return fixtures
}
