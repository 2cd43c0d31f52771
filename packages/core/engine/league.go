package engine

import (
	"fmt"

	"bab-arcade/packages/core/models"
)

// NewLeague schedules a single round-robin and builds the empty table.
func NewLeague(competitors []models.Competitor) (models.League, error) {
	if len(competitors) < 2 {
		return models.League{}, fmt.Errorf("%w: a league needs at least 2, have %d", ErrNotEnoughCompetitors, len(competitors))
	}
	fixtures := GenerateRoundRobin(competitors)
	table, err := ComputeTable(competitors, fixtures)
	if err != nil {
		return models.League{}, err
	}
	return models.League{Fixtures: fixtures, Table: table, CurrentWeek: 0}, nil
}

// AdvanceLeague records the tracked competitor's fixture of the next round,
// simulates the rest of that round, rebuilds the table and moves on one week.
// The input league is never modified.
func AdvanceLeague(l models.League, competitors []models.Competitor, trackedCode string, team1, team2 models.Competitor, result models.MatchResult, sim *Simulator) (models.League, error) {
	if l.Finished() {
		return l, ErrCompetitionFinished
	}
	if err := result.Validate(); err != nil {
		return l, err
	}
	if result.HasPenalties() {
		return l, fmt.Errorf("%w: league fixtures are not decided on penalties", models.ErrInvalidResult)
	}

	round := l.CurrentWeek + 1
	idx := -1
	for i, f := range l.Fixtures {
		if f.Round == round && f.Pairs(team1, team2) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return l, fmt.Errorf("%w: %s vs %s in week %d", ErrFixtureNotFound, team1.Code, team2.Code, round)
	}
	if l.Fixtures[idx].Played() {
		return l, fmt.Errorf("%w: %s vs %s in week %d", ErrAlreadyResolved, team1.Code, team2.Code, round)
	}

	next := l.Clone()
	if !next.Fixtures[idx].Team1.Same(team1) {
		result = result.Swapped()
	}
	res := result
	next.Fixtures[idx].Result = &res

	out, err := closeWeek(next, competitors, trackedCode, sim)
	if err != nil {
		return l, err
	}
	return out, nil
}

// SimulateWeek is used when the tracked competitor has a bye in the next round.
func SimulateWeek(l models.League, competitors []models.Competitor, trackedCode string, sim *Simulator) (models.League, error) {
	if l.Finished() {
		return l, ErrCompetitionFinished
	}
	if l.NextFixture(trackedCode) != nil {
		return l, ErrTrackedStillIn
	}
	out, err := closeWeek(l.Clone(), competitors, trackedCode, sim)
	if err != nil {
		return l, err
	}
	return out, nil
}

func closeWeek(l models.League, competitors []models.Competitor, trackedCode string, sim *Simulator) (models.League, error) {
	round := l.CurrentWeek + 1
	for i := range l.Fixtures {
		f := &l.Fixtures[i]
		if f.Round != round || f.Played() || f.Involves(trackedCode) {
			continue
		}
		res := sim.Simulate()
		f.Result = &res
	}

	table, err := ComputeTable(competitors, l.Fixtures)
	if err != nil {
		return l, err
	}
	l.Table = table
	l.CurrentWeek = round
	return l, nil
}
