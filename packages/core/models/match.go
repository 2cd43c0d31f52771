package models

import (
	"errors"
	"fmt"
)

type Outcome int

const (
	Draw Outcome = iota
	Team1Wins
	Team2Wins
)

func (o Outcome) String() string {
	switch o {
	case Team1Wins:
		return "team1"
	case Team2Wins:
		return "team2"
	default:
		return "draw"
	}
}

// MatchResult is a final scoreline in team1/team2 orientation. Penalty fields
// are only present when the match was level and went to a shootout.
type MatchResult struct {
	Team1Score     int  `json:"team1Score"`
	Team2Score     int  `json:"team2Score"`
	Team1Penalties *int `json:"team1Penalties,omitempty"`
	Team2Penalties *int `json:"team2Penalties,omitempty"`
}

func NewPenaltyResult(score, team1Penalties, team2Penalties int) MatchResult {
	p1, p2 := team1Penalties, team2Penalties
	return MatchResult{
		Team1Score:     score,
		Team2Score:     score,
		Team1Penalties: &p1,
		Team2Penalties: &p2,
	}
}

func (r MatchResult) HasPenalties() bool {
	return r.Team1Penalties != nil && r.Team2Penalties != nil
}

// Winner decides on penalties when present, on the scoreline otherwise.
func (r MatchResult) Winner() Outcome {
	a, b := r.Team1Score, r.Team2Score
	if r.HasPenalties() {
		a, b = *r.Team1Penalties, *r.Team2Penalties
	}
	switch {
	case a > b:
		return Team1Wins
	case b > a:
		return Team2Wins
	default:
		return Draw
	}
}

// ErrInvalidResult marks a scoreline that cannot have been played.
var ErrInvalidResult = errors.New("invalid match result")

func (r MatchResult) Validate() error {
	if r.Team1Score < 0 || r.Team2Score < 0 {
		return fmt.Errorf("%w: scores must be non-negative", ErrInvalidResult)
	}
	if (r.Team1Penalties == nil) != (r.Team2Penalties == nil) {
		return fmt.Errorf("%w: penalty scores must be given for both sides", ErrInvalidResult)
	}
	if !r.HasPenalties() {
		return nil
	}
	if *r.Team1Penalties < 0 || *r.Team2Penalties < 0 {
		return fmt.Errorf("%w: penalty scores must be non-negative", ErrInvalidResult)
	}
	if r.Team1Score != r.Team2Score {
		return fmt.Errorf("%w: penalties recorded for a decided match (%d-%d)", ErrInvalidResult, r.Team1Score, r.Team2Score)
	}
	if *r.Team1Penalties == *r.Team2Penalties {
		return fmt.Errorf("%w: a shootout cannot end level", ErrInvalidResult)
	}
	return nil
}

func (r MatchResult) Clone() MatchResult {
	cp := r
	if r.Team1Penalties != nil {
		v := *r.Team1Penalties
		cp.Team1Penalties = &v
	}
	if r.Team2Penalties != nil {
		v := *r.Team2Penalties
		cp.Team2Penalties = &v
	}
	return cp
}

func (r MatchResult) String() string {
	if r.HasPenalties() {
		return fmt.Sprintf("%d-%d (%d-%d pens)", r.Team1Score, r.Team2Score, *r.Team1Penalties, *r.Team2Penalties)
	}
	return fmt.Sprintf("%d-%d", r.Team1Score, r.Team2Score)
}

func cloneResult(r *MatchResult) *MatchResult {
	if r == nil {
		return nil
	}
	cp := r.Clone()
	return &cp
}

// Swapped returns the same result seen from the other side.
func (r MatchResult) Swapped() MatchResult {
	cp := r.Clone()
	cp.Team1Score, cp.Team2Score = cp.Team2Score, cp.Team1Score
	cp.Team1Penalties, cp.Team2Penalties = cp.Team2Penalties, cp.Team1Penalties
	return cp
}
