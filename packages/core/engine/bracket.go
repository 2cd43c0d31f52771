package engine

import (
	"fmt"

	"bab-arcade/packages/core/models"
)

// BracketSize is the number of entrants of a knockout tournament.
const BracketSize = 8

// GenerateBracket draws seven opponents for the tracked competitor and seeds
// all eight at random into the quarterfinals. Later rounds start empty.
func GenerateBracket(competitors []models.Competitor, tracked models.Competitor, sim *Simulator) (models.Tournament, error) {
	others := make([]models.Competitor, 0, len(competitors))
	for _, c := range competitors {
		if !c.Same(tracked) {
			others = append(others, c)
		}
	}
	if len(others) < BracketSize-1 {
		return models.Tournament{}, fmt.Errorf("%w: need %d opponents, have %d", ErrNotEnoughCompetitors, BracketSize-1, len(others))
	}

	sim.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	entrants := append([]models.Competitor{tracked}, others[:BracketSize-1]...)
	sim.Shuffle(len(entrants), func(i, j int) { entrants[i], entrants[j] = entrants[j], entrants[i] })

	var rounds [][]models.TournamentNode
	matchID := 0
	for size := BracketSize / 2; size >= 1; size /= 2 {
		round := make([]models.TournamentNode, size)
		for i := range round {
			round[i].MatchID = matchID
			matchID++
		}
		rounds = append(rounds, round)
	}
	for i := range rounds[0] {
		t1, t2 := entrants[2*i], entrants[2*i+1]
		rounds[0][i].Team1 = &t1
		rounds[0][i].Team2 = &t2
	}

	return models.Tournament{
		PlayerTeam:   tracked,
		Rounds:       rounds,
		CurrentRound: 0,
	}, nil
}

// ResolveAndAdvance records the tracked fixture of the current round, settles
// every other fixture of that round by simulation and moves the bracket on.
// The input is left untouched; on error it is still the valid state.
func ResolveAndAdvance(t models.Tournament, team1, team2 models.Competitor, result models.MatchResult, sim *Simulator) (models.Tournament, error) {
	if t.Finished() {
		return t, ErrCompetitionFinished
	}
	if t.CurrentRound < 0 || t.CurrentRound >= len(t.Rounds) {
		return t, fmt.Errorf("%w: current round %d of %d", ErrMalformedBracket, t.CurrentRound, len(t.Rounds))
	}
	if err := result.Validate(); err != nil {
		return t, err
	}
	if result.Winner() == models.Draw {
		return t, ErrUndecidedResult
	}

	idx := -1
	for i, n := range t.Rounds[t.CurrentRound] {
		if n.Pairs(team1, team2) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, fmt.Errorf("%w: %s vs %s", ErrFixtureNotFound, team1.Code, team2.Code)
	}
	if t.Rounds[t.CurrentRound][idx].Resolved() {
		return t, fmt.Errorf("%w: match %d", ErrAlreadyResolved, t.Rounds[t.CurrentRound][idx].MatchID)
	}

	next := t.Clone()
	node := &next.Rounds[next.CurrentRound][idx]
	if !node.Team1.Same(team1) {
		result = result.Swapped()
	}
	recordNode(node, result)

	if err := settleRound(&next, sim); err != nil {
		return t, err
	}
	return next, nil
}

// AdvanceWithoutTracked plays out the rest of the bracket once the tracked
// competitor is out, so the tournament still crowns a champion.
func AdvanceWithoutTracked(t models.Tournament, sim *Simulator) (models.Tournament, error) {
	if t.Finished() {
		return t, ErrCompetitionFinished
	}
	if t.NextFixture() != nil {
		return t, ErrTrackedStillIn
	}

	next := t.Clone()
	for !next.Finished() {
		if err := settleRound(&next, sim); err != nil {
			return t, err
		}
	}
	return next, nil
}

// settleRound simulates the unresolved fixtures of the current round, then
// either feeds the winners into the next round or crowns the champion.
func settleRound(t *models.Tournament, sim *Simulator) error {
	if t.CurrentRound < 0 || t.CurrentRound >= len(t.Rounds) {
		return fmt.Errorf("%w: current round %d of %d", ErrMalformedBracket, t.CurrentRound, len(t.Rounds))
	}
	round := t.Rounds[t.CurrentRound]

	for i := range round {
		node := &round[i]
		if node.Resolved() {
			continue
		}
		if !node.Ready() {
			return fmt.Errorf("%w: match %d has no opponents", ErrMalformedBracket, node.MatchID)
		}
		recordNode(node, sim.Simulate())
	}

	if t.CurrentRound == t.FinalRound() {
		if len(round) != 1 {
			return fmt.Errorf("%w: final round has %d matches", ErrMalformedBracket, len(round))
		}
		t.Winner = cloneCompetitorPtr(round[0].Winner)
		t.Version++
		return nil
	}

	nextRound := t.Rounds[t.CurrentRound+1]
	if len(round) != 2*len(nextRound) {
		return fmt.Errorf("%w: round %d has %d matches feeding %d", ErrMalformedBracket, t.CurrentRound, len(round), len(nextRound))
	}
	for k := range nextRound {
		nextRound[k].Team1 = cloneCompetitorPtr(round[2*k].Winner)
		nextRound[k].Team2 = cloneCompetitorPtr(round[2*k+1].Winner)
	}
	t.CurrentRound++
	t.Version++
	return nil
}

// recordNode writes a result and its winner. A level scoreline without
// penalties only comes from the simulator and goes to team1.
func recordNode(node *models.TournamentNode, result models.MatchResult) {
	res := result
	node.Result = &res
	if result.Winner() == models.Team2Wins {
		node.Winner = cloneCompetitorPtr(node.Team2)
	} else {
		node.Winner = cloneCompetitorPtr(node.Team1)
	}
}

func cloneCompetitorPtr(c *models.Competitor) *models.Competitor {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
